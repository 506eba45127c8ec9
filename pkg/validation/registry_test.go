package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HidayetHidayetov/auto-testify/pkg/domain"
	"github.com/HidayetHidayetov/auto-testify/pkg/validation"
)

func TestDefaultRegistry_BuiltinRules(t *testing.T) {
	r := validation.DefaultRegistry()
	assert.Equal(t, []string{
		"date", "email", "in", "integer", "max", "min",
		"not_in", "numeric", "regex", "required", "url",
	}, r.Names())
	assert.True(t, r.Has("required"))
	assert.False(t, r.Has("confirmed"))
}

func TestRegistry_RegisterValidates(t *testing.T) {
	r := validation.NewRegistry()

	require.Error(t, r.Register("", validation.Spec{}))
	require.Error(t, r.Register("uuid", validation.Spec{NameTemplate: "test_{model}_{field}_must_be_uuid"}))
	require.Error(t, r.Register("uuid", validation.Spec{
		Transform: func(field string, base domain.Attributes, _ domain.Rule) (domain.Attributes, error) {
			return base, nil
		},
	}))
	assert.Panics(t, func() { r.MustRegister("", validation.Spec{}) })
}

func TestRegistry_CustomRuleIsUsedByGenerator(t *testing.T) {
	r := validation.DefaultRegistry()
	r.MustRegister("uuid", validation.Spec{
		NameTemplate: "test_{model}_{field}_must_be_a_uuid",
		Transform: func(field string, base domain.Attributes, _ domain.Rule) (domain.Attributes, error) {
			return base.With(field, "not-a-uuid"), nil
		},
	})

	g := validation.NewGenerator(r)
	cases := g.Generate("Order", []domain.FieldRules{{Field: "reference", Rules: "uuid"}}, nil)
	require.Len(t, cases, 1)
	assert.Equal(t, "test_order_reference_must_be_a_uuid", cases[0].Name)
	assert.Equal(t, map[string]string{"reference": "not-a-uuid"}, cases[0].Attributes.Map())
	assert.Equal(t, validation.FailsOnField("reference"), cases[0].Assertion)
}

func TestSpec_TestName(t *testing.T) {
	spec := validation.Spec{NameTemplate: "test_{model}_{field}_must_not_exceed_{param}_characters"}
	assert.Equal(t, "test_user_name_must_not_exceed_255_characters", spec.TestName("user", "name", "255"))
}
