package smtp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComposeMessage(t *testing.T) {
	t.Run("копии попадают в заголовок Cc", func(t *testing.T) {
		raw := composeMessage("noreply@corp.local", "employee@corp.local",
			[]string{"hr@corp.local", "manager@corp.local"}, "<p>body</p>", "Appraisal update")

		require.Contains(t, raw, "Subject: Appraisal update\n")
		require.Contains(t, raw, "To: employee@corp.local\n")
		require.Contains(t, raw, "Cc: hr@corp.local, manager@corp.local\n")
		require.True(t, strings.HasSuffix(raw, "<p>body</p>\r\n"))
	})

	t.Run("без копий заголовок Cc отсутствует", func(t *testing.T) {
		raw := composeMessage("noreply@corp.local", "employee@corp.local", nil, "<p>body</p>", "Appraisal update")
		require.NotContains(t, raw, "Cc:")
	})
}
