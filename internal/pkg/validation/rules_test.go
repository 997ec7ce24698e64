package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentID(t *testing.T) {
	assert.True(t, StudentID("S2024001"))
	assert.True(t, StudentID("CSE-21-044"))
	assert.False(t, StudentID(""))
	assert.False(t, StudentID("ab"))
	assert.False(t, StudentID("S 1001"))
	assert.False(t, StudentID("-S1001"))
}

func TestEmailAndPhone(t *testing.T) {
	assert.True(t, Email("Asha.K@College.edu"))
	assert.False(t, Email("asha@"))

	assert.True(t, Phone(""))
	assert.True(t, Phone("+919876543210"))
	assert.False(t, Phone("98-76"))
}

func TestChecker(t *testing.T) {
	var c Checker
	assert.NoError(t, c.Err())

	c.Check(true, "name", "ok").Check(false, "email", "invalid").Check(false, "phone", "invalid")
	err := c.Err()
	require.Error(t, err)

	errs, ok := err.(Errors)
	require.True(t, ok)
	assert.Len(t, errs, 2)
	assert.Equal(t, "email: invalid; phone: invalid", err.Error())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("")
	assert.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseDate("2004-02-29")
	require.NoError(t, err)
	assert.Equal(t, 29, d.Day())

	_, err = ParseDate("29/02/2004")
	assert.Error(t, err)
}
