package domain

// Logger ロガー
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Notifier 通知
type Notifier interface {
	Notify(format string, v ...interface{}) error
}
