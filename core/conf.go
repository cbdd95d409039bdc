package core

type Conf struct {
	Version              string `long:"version" description:"version of the qaoa engine" env:"QPQAOA_VERSION"`
	DevMode              bool   `long:"dev-mode" description:"run in dev mode" env:"QPQAOA_DEV_MODE"`
	DisableStdoutLog     bool   `long:"disable-stdout-log" description:"do not log in standard output" env:"QPQAOA_DISABLE_STDOUT_LOG"`
	EnableFileLog        bool   `long:"enable-file-log" description:"enable log in file" env:"QPQAOA_ENABLE_FILE_LOG"`
	LogDir               string `long:"log-dir" description:"rotating log file dir" default:"./shares/logs" env:"QPQAOA_LOG_DIR"`
	LogLevel             string `long:"log-level" description:"log level" default:"info" choice:"debug" choice:"info" choice:"warn" choice:"error" env:"QPQAOA_LOG_LEVEL"`
	LogRotationMaxDays   int    `long:"log-rotation-max-days" description:"max days of log rotation" default:"7" env:"QPQAOA_LOG_ROTATION_MAX_DAYS"`
	QueueMaxSize         int    `long:"queue-max-size" description:"queue max size" default:"100" env:"QPQAOA_QUEUE_MAX_SIZE"`
	QueueRefillThreshold int    `long:"queue-refill-threshold" description:"queue refill threshold" default:"10" env:"QPQAOA_QUEUE_REFILL_THRESHOLD"`
	MaxQubits            int    `long:"max-qubits" description:"max qubit count the statevector backend accepts" default:"24" env:"QPQAOA_MAX_QUBITS"`
	MaxShots             int    `long:"max-shots" description:"max shots per sampling call" default:"1000000" env:"QPQAOA_MAX_SHOTS"`
	Seed                 int64  `long:"seed" description:"seed of the sampling rng, 0 means time-based" default:"0" env:"QPQAOA_SEED"`
	WatchDir             string `long:"watch-dir" description:"directory polled for submitted problem files" default:"./shares/jobs" env:"QPQAOA_WATCH_DIR"`
	SettingPath          string `long:"setting-path" description:"setting file path" default:"./setting/setting.toml" env:"QPQAOA_SETTING_PATH"`
}
