package system

import "os"

// EnvStdIOLog names the file stdout and stderr are redirected to when no flag is given.
const EnvStdIOLog = "LIFEDESK_STDIO_LOG"

// StdIOLogPath returns flagValue, or the EnvStdIOLog value when the flag is empty.
func StdIOLogPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvStdIOLog)
}

func openStdIOLog(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}
