package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/app/repositories"
)

func TestWeeklyMenuCoversEveryWeekdayOnce(t *testing.T) {
	menu := WeeklyMenu()
	days := make([]string, 0, len(menu))
	for _, item := range menu {
		days = append(days, item.Day)
		assert.NotNil(t, item.Snacks)
		assert.NotEmpty(t, item.Breakfast)
	}
	assert.Equal(t, repositories.Weekdays, days)
}

func TestWorkersHaveUniqueUpiHandles(t *testing.T) {
	seen := map[string]bool{}
	for _, w := range Workers() {
		assert.False(t, seen[w.UpiID], w.UpiID)
		seen[w.UpiID] = true
	}
	assert.Len(t, seen, 4)
}

func TestAnnouncementsNewestFirst(t *testing.T) {
	list := Announcements()
	for i := 1; i < len(list); i++ {
		assert.True(t, list[i-1].Timestamp.After(list[i].Timestamp))
		assert.True(t, list[i].Priority.Valid())
	}
}

func TestDemoUsersCoverBothRoles(t *testing.T) {
	users := DemoUsers()
	assert.Equal(t, models.RoleStudent, users[0].Role)
	assert.Equal(t, models.RoleCommittee, users[1].Role)
}
