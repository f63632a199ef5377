package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan() PlanData {
	return PlanData{
		DefaultEnvironment: Groups{
			"web": PackageFiles{
				"vendor/http": {"config/web.php", "config/routes.php"},
				RootPackage:   {"config/web.php"},
			},
			"params": PackageFiles{
				RootPackage: {"config/params.php"},
			},
		},
		"prod": Groups{
			"web": PackageFiles{
				"vendor/http": {"config/web-prod.php"},
			},
		},
	}
}

// TestPlanData_Clone verifies that Clone produces an independent deep copy:
// writes to the copy's file lists and maps must not leak into the original.
func TestPlanData_Clone(t *testing.T) {
	orig := samplePlan()
	cp := orig.Clone()
	require.Equal(t, orig, cp)

	cp[DefaultEnvironment]["web"]["vendor/http"][0] = "changed.php"
	cp[DefaultEnvironment]["web"]["new/pkg"] = []string{"x.php"}
	cp["dev"] = Groups{}

	assert.Equal(t, "config/web.php", orig[DefaultEnvironment]["web"]["vendor/http"][0])
	assert.NotContains(t, orig[DefaultEnvironment]["web"], "new/pkg")
	assert.NotContains(t, orig, "dev")
}

// TestClone_Nil checks that cloning nil at each level stays nil rather
// than turning into an empty map.
func TestClone_Nil(t *testing.T) {
	assert.Nil(t, PlanData(nil).Clone())
	assert.Nil(t, Groups(nil).Clone())
	assert.Nil(t, PackageFiles(nil).Clone())
}

// TestSortedAccessors verifies that key listings are sorted so CLI output
// is deterministic.
func TestSortedAccessors(t *testing.T) {
	plan := samplePlan()

	assert.Equal(t, []string{"/", "prod"}, plan.Environments())
	assert.Equal(t, []string{"params", "web"}, plan[DefaultEnvironment].Names())
	assert.Equal(t, []string{"/", "vendor/http"}, plan[DefaultEnvironment]["web"].Packages())
	assert.Empty(t, PlanData(nil).Environments())
}

func TestPlanData_FileCount(t *testing.T) {
	assert.Equal(t, 5, samplePlan().FileCount())
	assert.Equal(t, 0, PlanData{}.FileCount())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "default", EnvironmentLabel(""))
	assert.Equal(t, "default", EnvironmentLabel(DefaultEnvironment))
	assert.Equal(t, "prod", EnvironmentLabel("prod"))
	assert.Equal(t, "(root)", PackageLabel(RootPackage))
	assert.Equal(t, "vendor/http", PackageLabel("vendor/http"))
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitPlanNotFound, "merge plan not found")
		assert.Equal(t, ExitPlanNotFound, err.Code)
		assert.Equal(t, "merge plan not found", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("unexpected end of JSON input")
		err := WrapCLIError(ExitInvalidPlan, "invalid merge plan", inner)
		assert.Equal(t, ExitInvalidPlan, err.Code)
		assert.Contains(t, err.Error(), "unexpected end of JSON input")
		assert.Equal(t, inner, err.Unwrap())
	})

	t.Run("errors.As chain", func(t *testing.T) {
		inner := errors.New("boom")
		var target *CLIError
		wrapped := errors.Join(errors.New("outer"), WrapCLIError(ExitInvalidManifest, "bad manifest", inner))
		require.True(t, errors.As(wrapped, &target))
		assert.Equal(t, ExitInvalidManifest, target.Code)
		assert.True(t, errors.Is(wrapped, inner))
	})
}
