package common

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
)

// FilterResultFields reduces a summary entry to the requested comma-separated
// field names. An empty fieldsStr returns every field.
func FilterResultFields(result interface{}, fieldsStr string) map[string]interface{} {
	fullMap := structToMap(result)
	if fieldsStr == "" {
		return fullMap
	}

	includeFields := make(map[string]bool)
	for _, field := range strings.Split(fieldsStr, ",") {
		includeFields[strings.TrimSpace(field)] = true
	}

	filtered := make(map[string]interface{})
	for key, value := range fullMap {
		if includeFields[key] {
			filtered[key] = value
		}
	}
	return filtered
}

// structToMap converts a struct to map[string]interface{} using JSON marshaling.
func structToMap(obj interface{}) map[string]interface{} {
	data, _ := json.Marshal(obj)
	var result map[string]interface{}
	_ = json.Unmarshal(data, &result)
	return result
}

// ContentHash computes the SHA256 hash of content and returns a hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}
