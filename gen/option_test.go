package gen

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithPackage(t *testing.T) {
	t.Run("sets package", func(t *testing.T) {
		c := &Config{}
		err := WithPackage("registry")(c)

		require.NoError(t, err)
		assert.Equal(t, "registry", c.Package)
	})

	t.Run("empty package returns error", func(t *testing.T) {
		c := &Config{}
		err := WithPackage("")(c)

		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestWithTarget(t *testing.T) {
	t.Run("sets target directory", func(t *testing.T) {
		c := &Config{}
		err := WithTarget("./tables")(c)

		require.NoError(t, err)
		assert.Equal(t, "./tables", c.Target)
	})

	t.Run("empty target returns error", func(t *testing.T) {
		c := &Config{}
		err := WithTarget("")(c)

		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestWithHeader(t *testing.T) {
	t.Run("sets header", func(t *testing.T) {
		c := &Config{}
		err := WithHeader("Code generated by schema tooling. DO NOT EDIT.")(c)

		require.NoError(t, err)
		assert.Equal(t, "Code generated by schema tooling. DO NOT EDIT.", c.Header)
	})

	t.Run("empty header returns error", func(t *testing.T) {
		c := &Config{Header: "existing"}
		err := WithHeader("")(c)

		require.Error(t, err)
		assert.True(t, IsConfigError(err))
		assert.Equal(t, "existing", c.Header)
	})
}

func TestWithWorkers(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		wantErr bool
	}{
		{"one", 1, false},
		{"several", 8, false},
		{"zero", 0, true},
		{"negative", -2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := WithWorkers(tt.workers)(c)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.workers, c.Workers)
			}
		})
	}
}

func TestWithForce(t *testing.T) {
	c := &Config{}
	err := WithForce()(c)

	require.NoError(t, err)
	assert.True(t, c.Force)
}

func TestConfigApply(t *testing.T) {
	t.Run("applies multiple options", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(
			WithPackage("registry"),
			WithTarget("./tables"),
			WithWorkers(2),
		)

		require.NoError(t, err)
		assert.Equal(t, "registry", c.Package)
		assert.Equal(t, "./tables", c.Target)
		assert.Equal(t, 2, c.Workers)
	})

	t.Run("stops on first error", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(
			WithPackage(""),        // Error
			WithTarget("./tables"), // Should not be applied
		)

		require.Error(t, err)
		assert.Empty(t, c.Package)
		assert.Empty(t, c.Target)
	})
}

func TestConfigApplyAll(t *testing.T) {
	t.Run("collects all errors", func(t *testing.T) {
		c := &Config{}
		err := c.ApplyAll(
			WithPackage(""), // Error
			WithTarget(""),  // Error
		)

		require.Error(t, err)
		// errors.Join returns an error with Unwrap() []error
		unwrapper, ok := err.(interface{ Unwrap() []error })
		require.True(t, ok, "error should implement Unwrap() []error")
		assert.Equal(t, 2, len(unwrapper.Unwrap()))
	})

	t.Run("returns nil when all succeed", func(t *testing.T) {
		c := &Config{}
		err := c.ApplyAll(
			WithPackage("registry"),
			WithTarget("./tables"),
		)

		require.NoError(t, err)
	})
}

func TestNewConfig(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		c, err := NewConfig()

		require.NoError(t, err)
		assert.Equal(t, DefaultPackage, c.Package)
		assert.Equal(t, DefaultHeader, c.Header)
		assert.Equal(t, runtime.GOMAXPROCS(0), c.Workers)
		assert.False(t, c.Force)
	})

	t.Run("creates config with options", func(t *testing.T) {
		c, err := NewConfig(
			WithPackage("registry"),
			WithTarget("./tables"),
		)

		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "registry", c.Package)
		assert.Equal(t, "./tables", c.Target)
	})

	t.Run("returns error on invalid option", func(t *testing.T) {
		c, err := NewConfig(
			WithPackage(""),
		)

		require.Error(t, err)
		assert.Nil(t, c)
	})
}

func TestMustNewConfig(t *testing.T) {
	t.Run("returns config on success", func(t *testing.T) {
		c := MustNewConfig(
			WithPackage("registry"),
		)

		require.NotNil(t, c)
		assert.Equal(t, "registry", c.Package)
	})

	t.Run("panics on error", func(t *testing.T) {
		assert.Panics(t, func() {
			MustNewConfig(WithPackage(""))
		})
	})
}
