package pg

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/desichan/desichan/shared/config"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
		{"ünï_cödé", `ünï\_cödé`},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeLike(tt.in), "input %q", tt.in)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("save user: %w", &pq.Error{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(fmt.Errorf("boom")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.Pg{Host: "db", Port: 5433, User: "u", Password: "p", Dbname: "boards"})
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=boards sslmode=disable", dsn)
}
