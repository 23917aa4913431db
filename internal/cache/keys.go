package cache

import "strings"

const (
	GlobalKeyPrefix = "careerquiz"

	scoringService = "scoring"
	resultObject   = "result"
)

// GenerateCacheKey joins prefix, service, object type and identifier with ":".
// Extra params are joined by "_" and appended as a last segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// ResultKey is the key of a stored evaluation.
func ResultKey(resultID string) string {
	return GenerateCacheKey(scoringService, resultObject, resultID)
}
