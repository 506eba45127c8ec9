package validation_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HidayetHidayetov/auto-testify/pkg/attributes"
	"github.com/HidayetHidayetov/auto-testify/pkg/domain"
	"github.com/HidayetHidayetov/auto-testify/pkg/validation"
)

func userBase() domain.Attributes {
	return attributes.Synthesize([]string{"name", "email", "password"})
}

func TestGenerate_RuleTable(t *testing.T) {
	base := userBase()

	tests := []struct {
		ruleString string
		field      string
		name       string
		value      string
	}{
		{"email", "email", "test_user_email_must_be_valid_email", "invalid-email"},
		{"max:5", "name", "test_user_name_must_not_exceed_5_characters", "aaaaaa"},
		{"min:3", "name", "test_user_name_must_be_at_least_3_characters", "aa"},
		{"numeric", "name", "test_user_name_must_be_numeric", "not-a-number"},
		{"integer", "name", "test_user_name_must_be_an_integer", "12.34"},
		{"in:admin,user", "name", "test_user_name_must_be_in_allowed_values", "invalid-value"},
		{"not_in:root,admin", "name", "test_user_name_must_not_be_in_disallowed_values", "root"},
		{"date", "name", "test_user_name_must_be_a_valid_date", "invalid-date"},
		{"url", "name", "test_user_name_must_be_a_valid_url", "not-a-url"},
	}

	for _, tt := range tests {
		t.Run(tt.ruleString, func(t *testing.T) {
			cases := validation.Generate("User", []domain.FieldRules{{Field: tt.field, Rules: tt.ruleString}}, base)
			require.Len(t, cases, 1)

			c := cases[0]
			assert.Equal(t, tt.name, c.Name)
			assert.Equal(t, tt.field, c.Field)
			got, ok := c.Attributes.Get(tt.field)
			require.True(t, ok)
			assert.Equal(t, tt.value, got)
			assert.Equal(t, base.Fields(), c.Attributes.Fields(), "every fillable field stays present")
			assert.Equal(t, domain.Assertion{Fails: true, ErrorKeys: []string{tt.field}}, c.Assertion)
		})
	}
}

func TestGenerate_RequiredDropsOnlyTargetField(t *testing.T) {
	base := userBase()
	cases := validation.Generate("User", []domain.FieldRules{{Field: "email", Rules: "required"}}, base)
	require.Len(t, cases, 1)

	assert.Equal(t, "test_user_email_is_required", cases[0].Name)
	assert.Equal(t, []string{"name", "password"}, cases[0].Attributes.Fields())
	assert.True(t, base.Has("email"), "base set must not change")
}

func TestGenerate_OrderFollowsFieldsThenSegments(t *testing.T) {
	rules := []domain.FieldRules{
		{Field: "name", Rules: "required|max:255"},
		{Field: "email", Rules: "required|email"},
	}
	cases := validation.Generate("User", rules, userBase())

	names := make([]string, 0, len(cases))
	for _, c := range cases {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"test_user_name_is_required",
		"test_user_name_must_not_exceed_255_characters",
		"test_user_email_is_required",
		"test_user_email_must_be_valid_email",
	}, names)
}

func TestGenerate_MaxBoundaryLength(t *testing.T) {
	cases := validation.Generate("User", []domain.FieldRules{{Field: "name", Rules: "max:255"}}, userBase())
	require.Len(t, cases, 1)
	v, _ := cases[0].Attributes.Get("name")
	assert.Len(t, v, 256)
	assert.Equal(t, strings.Repeat("a", 256), v)
}

func TestGenerateReport_OversizedLengthIsSkipped(t *testing.T) {
	tests := []struct {
		name  string
		rules string
	}{
		{"overflowing max", "max:9223372036854775807"},
		{"longtext max", "max:4294967295"},
		{"oversized min", "min:4294967295"},
		{"out of int range", "max:99999999999999999999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := validation.NewGenerator(nil).GenerateReport("User", []domain.FieldRules{
				{Field: "name", Rules: "required|" + tt.rules},
			}, userBase())

			require.Len(t, report.Cases, 1)
			assert.Equal(t, "test_user_name_is_required", report.Cases[0].Name)
			require.Len(t, report.Skipped, 1)
			assert.Equal(t, tt.rules, report.Skipped[0].Segment)
			assert.Contains(t, report.Skipped[0].Reason, "invalid rule parameter")
		})
	}
}

func TestGenerate_MaxAtLimit(t *testing.T) {
	rules := []domain.FieldRules{{Field: "name", Rules: "max:" + strconv.Itoa(validation.MaxLengthParam)}}
	cases := validation.Generate("User", rules, userBase())
	require.Len(t, cases, 1)
	v, _ := cases[0].Attributes.Get("name")
	assert.Len(t, v, validation.MaxLengthParam+1)
}

func TestGenerate_MinZeroClamps(t *testing.T) {
	cases := validation.Generate("User", []domain.FieldRules{{Field: "name", Rules: "min:0"}}, userBase())
	require.Len(t, cases, 1)
	v, ok := cases[0].Attributes.Get("name")
	require.True(t, ok)
	assert.Empty(t, v)
}

func TestGenerate_UnknownRulesAreSkipped(t *testing.T) {
	cases := validation.Generate("User", []domain.FieldRules{{Field: "name", Rules: "string|confirmed|required"}}, userBase())
	require.Len(t, cases, 1)
	assert.Equal(t, "test_user_name_is_required", cases[0].Name)
}

func TestGenerate_EmptyRuleStringYieldsNothing(t *testing.T) {
	assert.Empty(t, validation.Generate("User", []domain.FieldRules{{Field: "name", Rules: ""}}, userBase()))
	assert.Empty(t, validation.Generate("User", nil, userBase()))
}

func TestGenerate_FieldOutsideBaseIsAdded(t *testing.T) {
	cases := validation.Generate("User", []domain.FieldRules{{Field: "role", Rules: "in:a,b"}}, userBase())
	require.Len(t, cases, 1)
	assert.Equal(t, []string{"name", "email", "password", "role"}, cases[0].Attributes.Fields())
}

func TestGenerate_InSkipsCollidingValue(t *testing.T) {
	cases := validation.Generate("User", []domain.FieldRules{{Field: "name", Rules: "in:invalid-value,invalid-value-1"}}, userBase())
	require.Len(t, cases, 1)
	v, _ := cases[0].Attributes.Get("name")
	assert.Equal(t, "invalid-value-2", v)
}

func TestGenerate_NotInWithoutValues(t *testing.T) {
	cases := validation.Generate("User", []domain.FieldRules{{Field: "name", Rules: "not_in:"}}, userBase())
	require.Len(t, cases, 1)
	v, _ := cases[0].Attributes.Get("name")
	assert.Equal(t, "disallowed", v)
}

func TestGenerate_ModelAndFieldAreSnakeCased(t *testing.T) {
	cases := validation.Generate("BlogPost", []domain.FieldRules{{Field: "PublishedAt", Rules: "date"}}, nil)
	require.Len(t, cases, 1)
	assert.Equal(t, "test_blog_post_published_at_must_be_a_valid_date", cases[0].Name)
	assert.Equal(t, "PublishedAt", cases[0].Field)
}

func TestGenerateReport_Diagnostics(t *testing.T) {
	g := validation.NewGenerator(nil)
	report := g.GenerateReport("User", []domain.FieldRules{
		{Field: "name", Rules: "required||string|max:abc"},
	}, userBase())

	require.Len(t, report.Cases, 1)
	require.Len(t, report.Skipped, 3)
	assert.Equal(t, validation.Skipped{Field: "name", Segment: "", Reason: validation.ReasonEmptySegment}, report.Skipped[0])
	assert.Equal(t, validation.Skipped{Field: "name", Segment: "string", Reason: validation.ReasonUnknownRule}, report.Skipped[1])
	assert.Equal(t, "max:abc", report.Skipped[2].Segment)
	assert.Contains(t, report.Skipped[2].Reason, "invalid rule parameter")
}

func TestGenerate_Deterministic(t *testing.T) {
	rules := []domain.FieldRules{{Field: "email", Rules: "required|email|max:20|regex:/^[a-z]+$/"}}
	assert.Equal(t,
		validation.Generate("User", rules, userBase()),
		validation.Generate("User", rules, userBase()))
}
