package sqltype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/pgqb/sqltype"
)

func TestEnum(t *testing.T) {
	taskType := sqltype.NewEnum("TaskType", "option", "other")

	t.Run("TypeName", func(t *testing.T) {
		assert.Equal(t, "TASK_TYPE", taskType.TypeName())
	})

	t.Run("DDL", func(t *testing.T) {
		got, err := taskType.DDL()
		require.NoError(t, err)
		assert.Equal(t, "TASK_TYPE", got)
	})

	t.Run("CreateType", func(t *testing.T) {
		want := "CREATE TYPE TASK_TYPE AS ENUM ('option', 'other');"
		assert.Equal(t, want, taskType.CreateType())
	})

	t.Run("Values", func(t *testing.T) {
		got := taskType.Values()
		assert.Equal(t, []string{"option", "other"}, got)

		// The returned slice is a copy.
		got[0] = "mutated"
		assert.Equal(t, []string{"option", "other"}, taskType.Values())
	})

	t.Run("MultiWordName", func(t *testing.T) {
		status := sqltype.NewEnum("OrderStatus", "pending", "shipped", "delivered")
		assert.Equal(t, "ORDER_STATUS", status.TypeName())
		assert.Equal(t, "CREATE TYPE ORDER_STATUS AS ENUM ('pending', 'shipped', 'delivered');", status.CreateType())
	})
}

func TestEnumValue(t *testing.T) {
	taskType := sqltype.NewEnum("TaskType", "option", "other")

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "option", taskType.Value("option").String())
	})

	t.Run("DriverValue", func(t *testing.T) {
		v, err := taskType.Value("other").Value()
		require.NoError(t, err)
		assert.Equal(t, "other", v)
	})
}
