package core

type NonSecretConf struct {
	DevMode              bool
	DisableStdoutLog     bool
	EnableFileLog        bool
	LogDir               string
	LogLevel             string
	LogRotationMaxDays   int
	QueueMaxSize         int
	QueueRefillThreshold int
	MaxQubits            int
	MaxShots             int
	Seed                 int64
	WatchDir             string
}

type Info struct {
	Conf *NonSecretConf
}

var CurrentInfo *Info

func SetInfo(c *Conf) {
	conf := &NonSecretConf{
		DevMode:              c.DevMode,
		DisableStdoutLog:     c.DisableStdoutLog,
		EnableFileLog:        c.EnableFileLog,
		LogDir:               c.LogDir,
		LogLevel:             c.LogLevel,
		LogRotationMaxDays:   c.LogRotationMaxDays,
		QueueMaxSize:         c.QueueMaxSize,
		QueueRefillThreshold: c.QueueRefillThreshold,
		MaxQubits:            c.MaxQubits,
		MaxShots:             c.MaxShots,
		Seed:                 c.Seed,
		WatchDir:             c.WatchDir,
	}

	CurrentInfo = &Info{
		Conf: conf,
	}
}
