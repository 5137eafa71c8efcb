package repository

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Amorphous121/jobboard/internal/database"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// Record keys handed out to clients are the part after "table:".
var recordKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,64}$`)

// recordID builds the full SurrealDB record id for a client-facing key
func recordID(table, key string) (string, error) {
	key = strings.TrimPrefix(key, table+":")
	if !recordKeyPattern.MatchString(key) {
		return "", fmt.Errorf("%w: %q", database.ErrInvalidID, key)
	}
	return table + ":" + key, nil
}

// recordKey strips the table prefix from a SurrealDB id
func recordKey(id interface{}) string {
	full := convertSurrealID(id)
	if i := strings.IndexByte(full, ':'); i >= 0 {
		return full[i+1:]
	}
	return full
}

// isUniqueConstraintError checks if an error is a unique constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "already exists") ||
		strings.Contains(errStr, "already contains")
}

// convertSurrealID converts a SurrealDB ID (which may be a complex object) to a string
func convertSurrealID(id interface{}) string {
	switch v := id.(type) {
	case string:
		return v
	case models.RecordID:
		return fmt.Sprintf("%s:%v", v.Table, v.ID)
	case *models.RecordID:
		if v != nil {
			return fmt.Sprintf("%s:%v", v.Table, v.ID)
		}
	case map[string]interface{}:
		// {"tb": "job", "id": "xxx"} or {"tb": "job", "id": {"String": "xxx"}}
		tb, _ := v["tb"].(string)
		idPart := ""
		if idVal, ok := v["id"]; ok {
			idPart = extractIDValue(idVal)
		}
		if tb != "" && idPart != "" {
			return tb + ":" + idPart
		}
		if idPart != "" {
			return idPart
		}
	}
	return fmt.Sprintf("%v", id)
}

// extractIDValue extracts the ID value which may be nested
func extractIDValue(val interface{}) string {
	if str, ok := val.(string); ok {
		return str
	}
	if m, ok := val.(map[string]interface{}); ok {
		if s, ok := m["String"].(string); ok {
			return s
		}
	}
	return fmt.Sprintf("%v", val)
}

// surrealTime wraps t for the CBOR encoder
func surrealTime(t time.Time) models.CustomDateTime {
	return models.CustomDateTime{Time: t}
}

// parseTime parses time from various formats
func parseTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	case models.CustomDateTime:
		return t.Time
	case *models.CustomDateTime:
		if t != nil {
			return t.Time
		}
	}
	return time.Time{}
}

// asRecord unwraps a QueryOne result into a record map
func asRecord(result interface{}) (map[string]interface{}, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}
	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, database.ErrNotFound
		}
		result = arr[0]
	}
	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result format %T", database.ErrQuery, result)
	}
	return data, nil
}

// extractQueryResults extracts the records of the first statement
func extractQueryResults(results []interface{}) []interface{} {
	if len(results) == 0 {
		return nil
	}
	if first, ok := results[0].(map[string]interface{}); ok {
		if records, ok := first["result"].([]interface{}); ok {
			return records
		}
	}
	return nil
}

// getString extracts a string value from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getInt extracts an int value from a map
func getInt(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case float32:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	}
	return 0
}

// getFloat extracts a float value from a map
func getFloat(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	}
	return 0
}

// getStringSlice extracts a string slice from a map
func getStringSlice(m map[string]interface{}, key string) []string {
	v, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	result := make([]string, 0, len(v))
	for _, item := range v {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}
