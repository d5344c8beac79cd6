package constants

const (
	// Reminder ids
	ReminderFajr           = "fajr"
	ReminderMorningAdhkar  = "morning_adhkar"
	ReminderEveningAdhkar  = "evening_adhkar"
	ReminderDailyChallenge = "daily_challenge"

	// Notification sounds
	SoundGentle  = "gentle"
	SoundNature  = "nature"
	SoundDigital = "digital"

	// Default Settings Values
	DefaultNotificationSound = SoundGentle
	DefaultCustomRepetitions = 1
)
