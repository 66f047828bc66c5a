package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	require.NoError(t, ValidateEmail("student@example.com"))
	require.Error(t, ValidateEmail(""))
	require.Error(t, ValidateEmail("not-an-email"))
	require.Error(t, ValidateEmail("missing@tld"))
}

func TestValidatePhone(t *testing.T) {
	require.NoError(t, ValidatePhone("+919876543210"))
	require.NoError(t, ValidatePhone("919876543210"))
	require.Error(t, ValidatePhone(""))
	require.Error(t, ValidatePhone("0123"))
	require.Error(t, ValidatePhone("abc"))
}

func TestValidateName(t *testing.T) {
	require.NoError(t, ValidateName("Asha Verma"))
	require.Error(t, ValidateName(""))
	require.Error(t, ValidateName(strings.Repeat("x", MaxNameLength+1)))
}

func TestValidateRollNumber(t *testing.T) {
	require.NoError(t, ValidateRollNumber("2026-CS-001"))
	require.NoError(t, ValidateRollNumber("BSC/26/042"))
	require.Error(t, ValidateRollNumber(""))
	require.Error(t, ValidateRollNumber("ab"))
	require.Error(t, ValidateRollNumber("has spaces"))
}
