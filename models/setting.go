package models

// Setting is a key/value store setting, upserted by key.
type Setting struct {
	Key   string `json:"key" bson:"key"`
	Value string `json:"value" bson:"value"`
}
