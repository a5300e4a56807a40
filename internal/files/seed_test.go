package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrylevesque/storefront/internal/models"
)

type recordingTarget struct {
	users    []models.User
	products []models.Product
}

func (r *recordingTarget) AddUser(email, password string, isAdmin bool) (models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return models.User{}, assert.AnError
		}
	}
	u := models.User{Email: email, Password: password, IsAdmin: isAdmin}
	r.users = append(r.users, u)
	return u, nil
}

func (r *recordingTarget) AddProduct(p models.Product) models.Product {
	r.products = append(r.products, p)
	return p
}

const sampleSeed = `
users:
  - email: admin@example.com
    password: root
    isAdmin: true
  - email: shopper@example.com
    password: pw
products:
  - name: Pen
    description: Blue ink
    price: 1.99
  - name: Lamp
    price: "24.50"
    isActive: false
`

func TestParseAndApplySeed(t *testing.T) {
	seed, err := ParseSeed([]byte(sampleSeed))
	require.NoError(t, err)

	var target recordingTarget
	users, products, err := seed.Apply(&target)
	require.NoError(t, err)
	assert.Equal(t, 2, users)
	assert.Equal(t, 2, products)

	assert.True(t, target.users[0].IsAdmin)
	assert.False(t, target.users[1].IsAdmin)

	pen := target.products[0]
	assert.Equal(t, "Pen", pen.Name)
	assert.Equal(t, "1.99", pen.Price.String())
	assert.True(t, pen.IsActive)

	lamp := target.products[1]
	assert.Equal(t, "24.5", lamp.Price.String())
	assert.False(t, lamp.IsActive)
}

func TestParseSeedRejectsBadInput(t *testing.T) {
	tests := map[string]string{
		"missing email":  "users:\n  - password: x\n",
		"bad price":      "products:\n  - name: A\n    price: cheap\n",
		"negative price": "products:\n  - name: A\n    price: -1\n",
		"not yaml":       "users: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSeed([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestApplyStopsOnDuplicateUser(t *testing.T) {
	seed, err := ParseSeed([]byte("users:\n  - email: a@x\n  - email: a@x\n"))
	require.NoError(t, err)

	users, _, err := seed.Apply(&recordingTarget{})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, users)
}

func TestReadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSeed), 0o600))

	seed, err := ReadSeedFile(path)
	require.NoError(t, err)
	assert.Len(t, seed.Users, 2)
	assert.Len(t, seed.Products, 2)

	_, err = ReadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
