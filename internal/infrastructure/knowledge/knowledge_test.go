package knowledge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asknix/asknix/internal/domain"
)

func intentWith(kind domain.IntentKind, entities map[string]string) domain.Intent {
	return domain.Intent{Kind: kind, Confidence: 1, Stage: domain.StageExact, Entities: entities}
}

func TestResolveInstall(t *testing.T) {
	b := New("")
	spec, err := b.Resolve(intentWith(domain.IntentInstall, map[string]string{"package": "firefox"}))
	require.NoError(t, err)
	assert.Equal(t, "nix", spec.Executable)
	assert.Equal(t, []string{"profile", "install", "nixpkgs#firefox"}, spec.Args)
	assert.True(t, spec.Reversible)
	assert.True(t, spec.Mutating)
	assert.False(t, spec.RequiresPrivilege)
	assert.Contains(t, spec.Explanation, "firefox")
}

func TestResolveRemoveIsIrreversible(t *testing.T) {
	b := New("")
	spec, err := b.Resolve(intentWith(domain.IntentRemove, map[string]string{"package": "htop"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"profile", "remove", "htop"}, spec.Args)
	assert.False(t, spec.Reversible)
	assert.True(t, spec.Mutating)
}

func TestResolveReadOnlyKinds(t *testing.T) {
	b := New("")
	tests := []struct {
		kind     domain.IntentKind
		entities map[string]string
		args     []string
	}{
		{domain.IntentSearch, map[string]string{"query": "text editor"}, []string{"search", "nixpkgs", "text editor"}},
		{domain.IntentList, nil, []string{"profile", "list"}},
		{domain.IntentInfo, map[string]string{"topic": "git"}, []string{"eval", "--raw", "nixpkgs#git.meta.description"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			spec, err := b.Resolve(intentWith(tt.kind, tt.entities))
			require.NoError(t, err)
			assert.Equal(t, tt.args, spec.Args)
			assert.False(t, spec.Mutating)
		})
	}
}

func TestResolveMutatingNoEntityKinds(t *testing.T) {
	b := New("")
	for _, kind := range []domain.IntentKind{domain.IntentUpdate, domain.IntentRollback} {
		spec, err := b.Resolve(intentWith(kind, nil))
		require.NoError(t, err, kind)
		assert.True(t, spec.Mutating, kind)
		assert.True(t, spec.Reversible, kind)
	}
}

func TestResolveUnknownKind(t *testing.T) {
	b := New("")
	_, err := b.Resolve(intentWith(domain.IntentUnknown, nil))
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.NotEmpty(t, nf.Suggestions)
}

func TestResolveMissingEntity(t *testing.T) {
	b := New("")
	_, err := b.Resolve(intentWith(domain.IntentInstall, nil))
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, domain.IntentInstall, nf.Kind)
}

func TestEducation(t *testing.T) {
	b := New("")
	assert.NotEmpty(t, b.Education(domain.IntentInstall))
	assert.NotEmpty(t, b.Education(domain.IntentRollback))
	assert.Empty(t, b.Education(domain.IntentUnknown))
}

func TestVocabularyIsSortedCopy(t *testing.T) {
	b := New("")
	v := b.Vocabulary()
	require.NotEmpty(t, v)
	v[0] = "mutated"
	assert.NotEqual(t, "mutated", b.Vocabulary()[0])
}

func TestSuggestions(t *testing.T) {
	b := New("")
	got := b.Suggestions("fierfox")
	require.NotEmpty(t, got)
	assert.Equal(t, "firefox", got[0])
	assert.LessOrEqual(t, len(got), 3)
}
