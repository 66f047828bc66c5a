package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeCourseSelection(t *testing.T) {
	t.Run("empty column yields nil", func(t *testing.T) {
		sel, err := DecodeCourseSelection(nil)
		require.NoError(t, err)
		require.Nil(t, sel)
	})

	t.Run("round trip", func(t *testing.T) {
		original := CourseSelection{
			Level:         "UG",
			Branch:        "Science",
			HonsSubject:   "Physics",
			Amount:        1500.00,
			PaymentStatus: CoursePaymentPaid,
		}
		raw, err := json.Marshal(original)
		require.NoError(t, err)

		sel, err := DecodeCourseSelection(raw)
		require.NoError(t, err)
		require.Equal(t, original, *sel)
	})

	t.Run("garbage fails", func(t *testing.T) {
		_, err := DecodeCourseSelection([]byte("{not json"))
		require.Error(t, err)
	})
}

func TestCourseSelection_Paid(t *testing.T) {
	var nilSel *CourseSelection
	require.False(t, nilSel.Paid())
	require.False(t, (&CourseSelection{PaymentStatus: CoursePaymentPending}).Paid())
	require.True(t, (&CourseSelection{PaymentStatus: CoursePaymentPaid}).Paid())
}

func TestCourseSelectionFromCatalog(t *testing.T) {
	course := Course{Level: "UG", Branch: "Science", HonsSubject: "Physics", Fee: 1500.00}
	sel := course.Selection()
	require.Equal(t, "UG", sel.Level)
	require.Equal(t, 1500.00, sel.Amount)
	require.Equal(t, CoursePaymentPending, sel.PaymentStatus)
}
