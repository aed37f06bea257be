package config

const (
	defaultStateDir       = "~/.local/share/consultq"
	defaultLogDir         = "~/.local/share/consultq/logs"
	defaultMessageLimit   = 2000
	defaultLanguage       = "en"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultNotifyTimeout  = 10
	defaultNotifyJoined   = true
	defaultNotifyLeft     = true
	defaultNotifyRemoved  = true
	defaultNotifyOnErrors = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Daemon: Daemon{
			MessageLimit: defaultMessageLimit,
			Language:     defaultLanguage,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Joined:         defaultNotifyJoined,
			Withdrawn:      defaultNotifyLeft,
			Removed:        defaultNotifyRemoved,
			Errors:         defaultNotifyOnErrors,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
