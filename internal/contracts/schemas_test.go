package contracts

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyFromPath(t *testing.T) {
	assert.Equal(t, "ContactCreatedEvent/1.0.0", generateKeyFromPath("events/contact-created/v1.json"))
	assert.Equal(t, "PropertyRequest/2.0.0", generateKeyFromPath("requests/property/v2.json"))
	assert.Empty(t, generateKeyFromPath("events/v1.json"))
	assert.Empty(t, generateKeyFromPath("other/thing/v1.json"))
}

func TestValidateEvent(t *testing.T) {
	valid := `{"contact_id":1,"email":"ana@mail.com","message":"Hi there","status":"PENDING","created_at":"2024-05-01T10:00:00Z","property_id":3}`
	assert.NoError(t, ValidateEvent("ContactCreated", "1.0.0", []byte(valid)))

	badStatus := `{"contact_id":1,"email":"ana@mail.com","message":"Hi there","status":"LOST","created_at":"2024-05-01T10:00:00Z"}`
	assert.Error(t, ValidateEvent("ContactCreated", "1.0.0", []byte(badStatus)))

	assert.Error(t, ValidateEvent("ContactCreated", "9.0.0", []byte(valid)))
	assert.Error(t, ValidateEvent("ContactCreated", "1.0.0", []byte("{")))
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest("Property", "1.0.0", []byte(`{"title":"Loft","price":10.5,"bedrooms":2}`)))
	assert.Error(t, ValidateRequest("Property", "1.0.0", []byte(`{"price":"cheap"}`)))
	assert.Error(t, ValidateRequest("Association", "1.0.0", []byte(`{}`)))
	assert.NoError(t, ValidateRequest("Association", "1.0.0", []byte(`{"id":4}`)))
}

func TestNewRegistryRejectsBrokenSchema(t *testing.T) {
	fsys := fstest.MapFS{
		"events/broken/v1.json": {Data: []byte(`{"type": 12}`)},
	}
	_, err := NewRegistry(fsys)
	require.Error(t, err)
}
