package util

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// settingsSpace namespaces fingerprints so they never collide with other
// name based UUIDs.
var settingsSpace = uuid.NewMD5(uuid.NameSpaceOID, []byte("quantum.go/settings"))

// Fingerprint returns a stable name based UUID for the JSON form of value.
// Equal settings always produce the same id.
func Fingerprint(value any) (uuid.UUID, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("fingerprint: %w", err)
	}
	return uuid.NewMD5(settingsSpace, raw), nil
}
