package config

const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv       = "CARTFLOW_APP_ENV"
	EnvLogLevel     = "CARTFLOW_LOG_LEVEL"
	EnvLogWarnStack = "CARTFLOW_LOG_WARN_STACK"
	EnvSimSeedFile  = "CARTFLOW_SIM_SEED_FILE"
	EnvSimStepDelay = "CARTFLOW_SIM_STEP_DELAY"
)
