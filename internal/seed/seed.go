package seed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/app/repositories"
	"github.com/yigit/hostelmess/internal/pkg/apperrors"
)

// CreateDefaultData fills empty tables with the demo week, the kitchen staff,
// the opening announcements and the two demo users. Tables that already hold
// rows are left alone, so this is safe to run on every start.
func CreateDefaultData(ctx context.Context, db repositories.DBTX, lgr zerolog.Logger) error {
	repos := repositories.NewRepositories(db)
	var finalErr error

	lgr.Info().Msg("Checking/Creating default data (menu, workers, announcements)...")

	if n, err := repos.MenuRepository.CountAll(ctx); err != nil {
		finalErr = errors.Join(finalErr, err)
	} else if n == 0 {
		for _, item := range WeeklyMenu() {
			if err := repos.MenuRepository.Create(ctx, item); err != nil && !errors.Is(err, apperrors.ErrDuplicateMenuDay) {
				lgr.Error().Err(err).Str("day", item.Day).Msg("Error creating menu day")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if n, err := repos.WorkerRepository.CountAll(ctx); err != nil {
		finalErr = errors.Join(finalErr, err)
	} else if n == 0 {
		for _, w := range Workers() {
			if err := repos.WorkerRepository.Create(ctx, w); err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
				lgr.Error().Err(err).Str("worker", w.Name).Msg("Error creating worker")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if n, err := repos.AnnouncementRepository.CountAll(ctx); err != nil {
		finalErr = errors.Join(finalErr, err)
	} else if n == 0 {
		for _, a := range Announcements() {
			if err := repos.AnnouncementRepository.Create(ctx, a); err != nil {
				lgr.Error().Err(err).Str("title", a.Title).Msg("Error creating announcement")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	for _, u := range DemoUsers() {
		if err := repos.UserRepository.Upsert(ctx, u); err != nil {
			lgr.Error().Err(err).Str("email", u.Email).Msg("Error creating demo user")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check/creation finished")
	}
	return finalErr
}

func menuDay(day string, breakfast, lunch, dinner []string) *models.MenuItem {
	item := &models.MenuItem{Day: day}
	item.Breakfast = breakfast
	item.Lunch = lunch
	item.Dinner = dinner
	item.Normalize()
	return item
}

// WeeklyMenu is the demo week. The demo kitchen serves no snacks.
func WeeklyMenu() []*models.MenuItem {
	return []*models.MenuItem{
		menuDay("Monday",
			[]string{"Poha", "Bread & Butter", "Tea/Coffee"},
			[]string{"Rice", "Dal Tadka", "Aloo Sabzi", "Roti", "Salad"},
			[]string{"Rice", "Rajma", "Mixed Vegetables", "Roti", "Curd"}),
		menuDay("Tuesday",
			[]string{"Upma", "Banana", "Tea/Coffee"},
			[]string{"Rice", "Sambar", "Bhindi Fry", "Roti", "Pickle"},
			[]string{"Rice", "Chana Masala", "Cauliflower Curry", "Roti", "Raita"}),
		menuDay("Wednesday",
			[]string{"Paratha", "Curd", "Tea/Coffee"},
			[]string{"Rice", "Dal Fry", "Palak Paneer", "Roti", "Salad"},
			[]string{"Rice", "Kadhi", "Aloo Gobi", "Roti", "Pickle"}),
		menuDay("Thursday",
			[]string{"Idli Sambar", "Coconut Chutney", "Tea/Coffee"},
			[]string{"Rice", "Rasam", "Egg Curry", "Roti", "Papad"},
			[]string{"Rice", "Dal Makhani", "Jeera Aloo", "Roti", "Curd"}),
		menuDay("Friday",
			[]string{"Dosa", "Sambar", "Chutney", "Tea/Coffee"},
			[]string{"Rice", "Dal", "Fish Curry", "Roti", "Salad"},
			[]string{"Rice", "Paneer Butter Masala", "Green Beans", "Roti", "Raita"}),
		menuDay("Saturday",
			[]string{"Puri Bhaji", "Tea/Coffee"},
			[]string{"Rice", "Sambar", "Chicken Curry", "Roti", "Pickle"},
			[]string{"Rice", "Dal", "Mix Veg", "Roti", "Curd", "Ice Cream"}),
		menuDay("Sunday",
			[]string{"Chole Bhature", "Tea/Coffee"},
			[]string{"Rice", "Dal", "Mutton Curry", "Roti", "Salad"},
			[]string{"Rice", "Rajma", "Cabbage Sabzi", "Roti", "Sweet Dish"}),
	}
}

const photoParams = "?auto=compress&cs=tinysrgb&w=150"

// Workers is the demo kitchen staff.
func Workers() []*models.Worker {
	return []*models.Worker{
		{Name: "Ramesh Kumar", Photo: "https://images.pexels.com/photos/1139743/pexels-photo-1139743.jpeg" + photoParams, UpiID: "ramesh.kumar@paytm", Role: "Head Chef"},
		{Name: "Priya Sharma", Photo: "https://images.pexels.com/photos/1310522/pexels-photo-1310522.jpeg" + photoParams, UpiID: "priya.sharma@phonepe", Role: "Assistant Chef"},
		{Name: "Suresh Patel", Photo: "https://images.pexels.com/photos/1222271/pexels-photo-1222271.jpeg" + photoParams, UpiID: "suresh.patel@gpay", Role: "Kitchen Helper"},
		{Name: "Anita Devi", Photo: "https://images.pexels.com/photos/1729931/pexels-photo-1729931.jpeg" + photoParams, UpiID: "anita.devi@paytm", Role: "Cleaner"},
	}
}

// Announcements are the opening notices, newest first, dated relative to now.
func Announcements() []*models.Announcement {
	now := time.Now().UTC().Truncate(time.Hour)
	return []*models.Announcement{
		{Title: "Special Dinner Tomorrow", Content: "We will be serving special biryani for dinner tomorrow to celebrate the festival. Please inform your friends!", Priority: models.PriorityHigh, Timestamp: now},
		{Title: "Mess Timing Change", Content: "Starting next week, breakfast timing will be extended till 10:30 AM due to popular demand.", Priority: models.PriorityMedium, Timestamp: now.Add(-18 * time.Hour)},
		{Title: "New Menu Items", Content: "We have added South Indian items to our breakfast menu. Try our new **dosa** and **uttapam**!", Priority: models.PriorityLow, Timestamp: now.Add(-49 * time.Hour)},
	}
}

// DemoUsers are the two accounts advertised on the login screen.
func DemoUsers() []*models.User {
	return []*models.User{
		{Name: "Arjun Singh", Role: models.RoleStudent, Email: "student@hostel.edu"},
		{Name: "Dr. Rajesh Sharma", Role: models.RoleCommittee, Email: "committee@hostel.edu"},
	}
}
