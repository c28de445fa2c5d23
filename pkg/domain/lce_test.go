package domain_test

import (
	"testing"

	"github.com/aretw0/aura/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestLCE_Variants(t *testing.T) {
	loading := domain.Loading[domain.LoginContent](domain.MsgLoginInProgress)
	assert.True(t, loading.IsLoading())
	assert.False(t, loading.IsContent())
	assert.Equal(t, domain.MsgLoginInProgress, loading.Message)

	content := domain.Content(domain.LoginContent{FieldsValid: true})
	assert.True(t, content.IsContent())
	assert.True(t, content.Data.FieldsValid)
	assert.Empty(t, content.Message)

	failed := domain.Failed[domain.LoginContent](domain.MsgLoginFailed)
	assert.True(t, failed.IsError())
	assert.Equal(t, "error", failed.Kind.String())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "loading", domain.KindLoading.String())
	assert.Equal(t, "content", domain.KindContent.String())
	assert.Equal(t, "unknown", domain.Kind(42).String())
}
