package config

const (
	defaultDataDir        = "~/.local/share/subtrack"
	defaultLogDir         = "~/.local/share/subtrack/logs"
	defaultBackend        = BackendSQLite
	defaultMongoDatabase  = "subtrack"
	defaultSaveTimeout    = 10
	defaultMaxFileBytes   = 8 << 20
	defaultImportLanguage = "fr"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Store: Store{
			Backend:       defaultBackend,
			MongoDatabase: defaultMongoDatabase,
		},
		Save: Save{
			TimeoutSeconds: defaultSaveTimeout,
		},
		Import: Import{
			MaxFileBytes:    defaultMaxFileBytes,
			DefaultLanguage: defaultImportLanguage,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
