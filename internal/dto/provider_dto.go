package dto

type ProviderResponse struct {
	Provider       string `json:"provider"`
	DefaultModel   string `json:"defaultModel"`
	SupportsImages bool   `json:"supportsImages"`
}

type ModelsResponse struct {
	Models []string `json:"models"`
}
