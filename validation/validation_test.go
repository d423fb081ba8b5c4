package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"constituency_site/locations"
	"constituency_site/models"
)

func validInput() models.RecordInput {
	return models.RecordInput{
		VidhanSabha:  "Mohiuddin Nagar",
		Block:        "Patori Block",
		Panchayat:    "Rupauli",
		Name:         "A. Kumar",
		MobileNumber: "9876543210",
	}
}

func TestValidateRecordSuccess(t *testing.T) {
	rec, errs := ValidateRecord(validInput())
	require.Nil(t, errs)
	assert.Equal(t, "Patori Block", rec.Block)
	assert.Equal(t, "Rupauli", rec.Panchayat)
	assert.Equal(t, "A. Kumar", rec.Name)
	assert.Equal(t, "9876543210", rec.MobileNumber)
	assert.True(t, rec.ID.IsZero())
	assert.True(t, rec.CreatedAt.IsZero())
}

func TestValidateRecordCrossBlockPanchayatAllowed(t *testing.T) {
	// "Rupauli" belongs to Patori Block; picking it under Mohanpur Block
	// is still accepted. The form never enforced the pairing.
	in := validInput()
	in.Block = "Mohanpur Block"
	rec, errs := ValidateRecord(in)
	require.Nil(t, errs)
	assert.Equal(t, "Mohanpur Block", rec.Block)
	assert.Equal(t, "Rupauli", rec.Panchayat)
}

func TestValidateRecordPlaceholders(t *testing.T) {
	in := validInput()
	in.Block = locations.BlockPlaceholder
	in.Panchayat = locations.PanchayatPlaceholder
	_, errs := ValidateRecord(in)
	require.Len(t, errs, 2)
	assert.Equal(t, "block", errs[0].Field)
	assert.Equal(t, "panchayat", errs[1].Field)
}

func TestValidateRecordUnknownLocations(t *testing.T) {
	in := validInput()
	in.Block = "Ghost Block"
	in.Panchayat = "Ghost Panchayat"
	_, errs := ValidateRecord(in)
	require.Len(t, errs, 2)
}

func TestValidateRecordNameRequired(t *testing.T) {
	in := validInput()
	in.Name = "   "
	_, errs := ValidateRecord(in)
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
}

func TestValidateRecordMobileNumber(t *testing.T) {
	cases := []struct {
		mobile string
		ok     bool
	}{
		{"", true},
		{"9876543210", true},
		{"  9876543210  ", true},
		{"987654321", false},
		{"98765432101", false},
		{"12345abcde", false},
		{"98765 4321", false},
	}
	for _, c := range cases {
		in := validInput()
		in.MobileNumber = c.mobile
		_, errs := ValidateRecord(in)
		if c.ok {
			assert.Nil(t, errs, "mobile %q should validate", c.mobile)
		} else {
			require.Len(t, errs, 1, "mobile %q should fail", c.mobile)
			assert.Equal(t, "mobile_number", errs[0].Field)
		}
	}
}

func TestValidateRecordDefaultsVidhanSabha(t *testing.T) {
	in := validInput()
	in.VidhanSabha = ""
	rec, errs := ValidateRecord(in)
	require.Nil(t, errs)
	assert.Equal(t, locations.DefaultVidhanSabha, rec.VidhanSabha)
}

func TestValidateRecordTrimsFields(t *testing.T) {
	in := validInput()
	in.Name = "  A. Kumar "
	in.Designation = " Mukhiya "
	in.Address = " Ward 4, Rupauli "
	rec, errs := ValidateRecord(in)
	require.Nil(t, errs)
	assert.Equal(t, "A. Kumar", rec.Name)
	assert.Equal(t, "Mukhiya", rec.Designation)
	assert.Equal(t, "Ward 4, Rupauli", rec.Address)
}

func TestValidateRecordDeterministic(t *testing.T) {
	a, errsA := ValidateRecord(validInput())
	b, errsB := ValidateRecord(validInput())
	assert.Equal(t, errsA, errsB)
	assert.Equal(t, a, b)
}

func TestErrorsMessage(t *testing.T) {
	_, errs := ValidateRecord(models.RecordInput{})
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "block")
	assert.Contains(t, errs.Error(), "name")
}
