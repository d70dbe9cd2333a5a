package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pojisteni/insurance-agency/internal/model"
)

func TestEmail(t *testing.T) {
	assert.Nil(t, Email("jan.novak@seznam.cz"))
	assert.Nil(t, Email("whatever@seznam.cz.example")) // substring rule, by contract

	err := Email("jan.novak@gmail.com")
	require.NotNil(t, err)
	assert.Equal(t, "email", err.Field)
	assert.Equal(t, MsgEmailDomain, err.Message)

	require.NotNil(t, Email(""))
}

func TestPasswordOK(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{"Abcdefgh", true},
		{"abcdefgh", false}, // no uppercase
		{"ABCDEFGH", false}, // no lowercase
		{"Abcdefg", false},  // too short
		{"", false},
		{"Žluťoučký", true}, // unicode letters count
		{"Abcdef1!", true},  // digits and symbols allowed
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, PasswordOK(tc.password), "password %q", tc.password)
	}
}

func TestRegistration(t *testing.T) {
	assert.Empty(t, Registration("alice", "Abcdefgh", "Abcdefgh"))

	errs := Registration("alice", "abcdefgh", "abcdefgh")
	require.Len(t, errs, 2)
	assert.Equal(t, MsgWeakPassword, errs[0].Message)

	errs = Registration("alice", "Abcdefgh", "Abcdefgi")
	require.Len(t, errs, 1)
	assert.Equal(t, "password_confirm", errs[0].Field)
	assert.Equal(t, MsgPasswordMismatch, errs[0].Message)

	errs = Registration("", "Abcdefgh", "Abcdefgh")
	require.Len(t, errs, 1)
	assert.Equal(t, "username", errs[0].Field)
}

func TestPolicyHolder(t *testing.T) {
	p := &model.PolicyHolder{
		Name: "Jan", Lastname: "Novák", BirthID: "900101/1234",
		Email: "jan@seznam.cz",
	}
	assert.Empty(t, PolicyHolder(p))

	p.Email = "jan@gmail.com"
	errs := PolicyHolder(p)
	require.Len(t, errs, 1)
	assert.Equal(t, MsgEmailDomain, errs[0].Message)

	empty := &model.PolicyHolder{}
	errs = PolicyHolder(empty)
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"name", "lastname", "birth_id", "email"}, fields)
}

func TestPolicy(t *testing.T) {
	amount := int64(100000)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, Policy(model.PaidByInsured, model.InsuranceEstate, &amount, from, to))

	errs := Policy(model.PaidByInsured, model.InsuranceEstate, nil, from, to)
	require.Len(t, errs, 1)
	assert.Equal(t, "target_amount", errs[0].Field)
	assert.Equal(t, MsgRequired, errs[0].Message)

	zero := int64(0)
	assert.Empty(t, Policy(model.PaidByInsured, model.InsuranceEstate, &zero, from, to),
		"explicit zero is not absence")

	errs = Policy("SOMEONE", "MAGIC", &amount, from, to)
	require.Len(t, errs, 2)
	assert.Equal(t, MsgInvalidChoice, errs[0].Message)

	errs = Policy(model.PaidByInsured, model.InsuranceEstate, &amount, to, from)
	require.Len(t, errs, 1)
	assert.Equal(t, "valid_from", errs[0].Field)
	assert.Equal(t, MsgDateOrder, errs[0].Message)
}

func TestEvent(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, Event("Vytopený byt", "SM-2024-17", date))

	errs := Event("", "", time.Time{})
	require.Len(t, errs, 3)
	for _, e := range errs {
		assert.Equal(t, MsgRequired, e.Message)
	}
}
