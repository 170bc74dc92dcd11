package models

// Preference keys the settings endpoint accepts. Each is written as an
// independent key-value row; no namespacing or versioning.
var PreferenceKeys = []string{"theme", "language", "companyName", "username", "fontSize"}

type Preference struct {
	Key   string `gorm:"primary_key"`
	Value string
}

func IsPreferenceKey(key string) bool {
	for _, k := range PreferenceKeys {
		if k == key {
			return true
		}
	}
	return false
}
