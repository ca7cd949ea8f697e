package constants

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func GetPort() string {
	return getEnv("PORT", "8080")
}

// GetDataPath is where the memory store snapshots compositions. An empty
// DATA_PATH keeps them in memory only.
func GetDataPath() string {
	v, ok := os.LookupEnv("DATA_PATH")
	if ok {
		return v
	}
	return "./out/compositions.dat"
}

// GetStore is "memory" or "dynamo".
func GetStore() string {
	return strings.ToLower(getEnv("STORE", "memory"))
}

func GetDynamoEndpoint() string {
	return os.Getenv("DYNAMO_ENDPOINT")
}

func GetDynamoRegion() string {
	return getEnv("DYNAMO_REGION", "localhost")
}

func GetDynamoTable() string {
	return getEnv("DYNAMO_TABLE", "scorepad-compositions")
}

func GetOSCAddr() string {
	return getEnv("OSC_ADDR", "127.0.0.1:8765")
}

func GetSaveDebounce() time.Duration {
	ms, err := strconv.Atoi(os.Getenv("SAVE_DEBOUNCE_MS"))
	if err != nil || ms < 0 {
		return 750 * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}

func GetCORSOrigins() []string {
	var res []string
	for _, o := range strings.Split(getEnv("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			res = append(res, o)
		}
	}
	return res
}

// MaxNotationBytes bounds request bodies and collaborative updates.
const MaxNotationBytes = 64 * 1024
