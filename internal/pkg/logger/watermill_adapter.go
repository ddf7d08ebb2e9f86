package logger

import "github.com/ThreeDotsLabs/watermill"

const watermillModule = "EVENTBUS"

// WatermillAdapter routes watermill's internal logs into ILogger.
type WatermillAdapter struct {
	logger ILogger
	fields watermill.LogFields
}

func NewWatermillAdapter(l ILogger) *WatermillAdapter {
	return &WatermillAdapter{logger: l}
}

func (a *WatermillAdapter) details(fields watermill.LogFields) map[string]interface{} {
	out := make(map[string]interface{}, len(a.fields)+len(fields))
	for k, v := range a.fields {
		out[k] = v
	}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func (a *WatermillAdapter) Error(msg string, err error, fields watermill.LogFields) {
	details := a.details(fields)
	if err != nil {
		details["error"] = err.Error()
	}
	a.logger.Error(watermillModule, msg, details)
}

func (a *WatermillAdapter) Info(msg string, fields watermill.LogFields) {
	a.logger.Info(watermillModule, msg, a.details(fields))
}

func (a *WatermillAdapter) Debug(msg string, fields watermill.LogFields) {
	a.logger.Debug(watermillModule, msg, a.details(fields))
}

// Trace is folded into Debug; ILogger has no finer level.
func (a *WatermillAdapter) Trace(msg string, fields watermill.LogFields) {
	a.logger.Debug(watermillModule, msg, a.details(fields))
}

func (a *WatermillAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &WatermillAdapter{logger: a.logger, fields: a.fields.Add(fields)}
}
