package nasa

import (
	"testing"

	"github.com/induct/apiary/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedContract(t *testing.T) {
	c, err := Contract()
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, testutil.NewNASAContract(), c)
	assert.Equal(t, []string{"local", "production"}, c.EnvironmentNames())
}
