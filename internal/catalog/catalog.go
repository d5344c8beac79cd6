// Package catalog holds the immutable reference data: prayers, remembrance
// categories and items, level thresholds, badges and default reminders.
package catalog

import (
	"github.com/julianstephens/rihla/internal/constants"
	"github.com/julianstephens/rihla/internal/models"
)

type Prayer struct {
	Key   models.PrayerKey
	Label string
	Time  string // nominal time, HH:MM
}

type CategoryInfo struct {
	ID       models.Category
	Title    string
	TimeHint string
}

type LevelTier struct {
	Name      models.Level
	MinPoints int
}

type Sound struct {
	ID          string
	Label       string
	Description string
}

type DeedInfo struct {
	Key   models.GoodDeed
	Label string
}

var Prayers = []Prayer{
	{Key: models.PrayerFajr, Label: "Fajr", Time: "05:12"},
	{Key: models.PrayerDhuhr, Label: "Dhuhr", Time: "12:05"},
	{Key: models.PrayerAsr, Label: "Asr", Time: "15:20"},
	{Key: models.PrayerMaghrib, Label: "Maghrib", Time: "18:45"},
	{Key: models.PrayerIsha, Label: "Isha", Time: "20:15"},
}

var Categories = []CategoryInfo{
	{ID: models.CategoryMorning, Title: "Morning adhkar", TimeHint: "after Fajr"},
	{ID: models.CategoryEvening, Title: "Evening adhkar", TimeHint: "after Asr"},
	{ID: models.CategoryAfterPrayer, Title: "After-prayer adhkar", TimeHint: "right after salah"},
	{ID: models.CategoryBeforeSleep, Title: "Before-sleep adhkar", TimeHint: "before sleeping"},
}

var GoodDeeds = []DeedInfo{
	{Key: models.DeedIftar, Label: "Iftar for a fasting person"},
	{Key: models.DeedSadaqah, Label: "Sadaqah"},
	{Key: models.DeedGeneral, Label: "General good deed"},
}

// Levels is ordered by ascending threshold.
var Levels = []LevelTier{
	{Name: models.LevelBeginner, MinPoints: 0},
	{Name: models.LevelRegular, MinPoints: 2000},
	{Name: models.LevelDiligent, MinPoints: 10000},
	{Name: models.LevelFirm, MinPoints: 30000},
	{Name: models.LevelRoleModel, MinPoints: 100000},
}

var Sounds = []Sound{
	{ID: constants.SoundGentle, Label: "Gentle chime", Description: "soft and calm"},
	{ID: constants.SoundNature, Label: "Nature", Description: "quiet birdsong"},
	{ID: constants.SoundDigital, Label: "Digital tone", Description: "short and direct"},
}

var recitations = []models.RecitationItem{
	{ID: "m1", Category: models.CategoryMorning, Text: "We have reached the morning and the dominion belongs to Allah; praise be to Allah, none has the right to be worshipped but Allah alone.", Repetitions: 1},
	{ID: "m2", Category: models.CategoryMorning, Text: "O Allah, by You we enter the morning and by You we enter the evening, by You we live and die, and to You is the resurrection.", Repetitions: 1},
	{ID: "m3", Category: models.CategoryMorning, Text: "Glory be to Allah and praise Him, by the number of His creation, His pleasure, the weight of His Throne and the ink of His words.", Repetitions: 3},
	{ID: "m4", Category: models.CategoryMorning, Text: "O Allah, I ask You for beneficial knowledge, good provision and accepted deeds.", Repetitions: 1},
	{ID: "m5", Category: models.CategoryMorning, Text: "I am pleased with Allah as my Lord, Islam as my religion and Muhammad (peace be upon him) as my Prophet.", Repetitions: 3},
	{ID: "m6", Category: models.CategoryMorning, Text: "O Ever-Living, O Sustainer, by Your mercy I seek help; rectify all my affairs and do not leave me to myself for the blink of an eye.", Repetitions: 1},

	{ID: "e1", Category: models.CategoryEvening, Text: "We have reached the evening and the dominion belongs to Allah; praise be to Allah, none has the right to be worshipped but Allah alone.", Repetitions: 1},
	{ID: "e2", Category: models.CategoryEvening, Text: "O Allah, by You we enter the evening and by You we enter the morning, by You we live and die, and to You is the return.", Repetitions: 1},
	{ID: "e3", Category: models.CategoryEvening, Text: "I seek refuge in the perfect words of Allah from the evil of what He has created.", Repetitions: 3},
	{ID: "e4", Category: models.CategoryEvening, Text: "O Allah, grant me health in my body, my hearing and my sight.", Repetitions: 3},
	{ID: "e5", Category: models.CategoryEvening, Text: "O Allah, I seek refuge in You from disbelief and poverty, and from the punishment of the grave.", Repetitions: 3},

	{ID: "ap1", Category: models.CategoryAfterPrayer, Text: "I seek Allah's forgiveness (3x). O Allah, You are Peace and from You is peace; blessed are You, O Owner of majesty and honour.", Repetitions: 1},
	{ID: "ap2", Category: models.CategoryAfterPrayer, Text: "SubhanAllah (33), Alhamdulillah (33), Allahu Akbar (33), completed with: none has the right to be worshipped but Allah alone.", Repetitions: 1},
	{ID: "ap3", Category: models.CategoryAfterPrayer, Text: "O Allah, help me to remember You, to thank You and to worship You well.", Repetitions: 1},
	{ID: "ap4", Category: models.CategoryAfterPrayer, Text: "Recite Ayat al-Kursi after every prayer.", Repetitions: 1},

	{ID: "s1", Category: models.CategoryBeforeSleep, Text: "In Your name, O Allah, I die and I live.", Repetitions: 1},
	{ID: "s2", Category: models.CategoryBeforeSleep, Text: "O Allah, protect me from Your punishment on the day You resurrect Your servants.", Repetitions: 3},
	{ID: "s3", Category: models.CategoryBeforeSleep, Text: "Recite Surat al-Mulk.", Repetitions: 1},
	{ID: "s4", Category: models.CategoryBeforeSleep, Text: "O Allah, I submit myself to You, entrust my affairs to You and turn my face to You.", Repetitions: 1},
	{ID: "s5", Category: models.CategoryBeforeSleep, Text: "In Your name, my Lord, I lay down my side and by You I raise it; if You take my soul, have mercy on it.", Repetitions: 1},
}

var recitationIndex = func() map[string]models.RecitationItem {
	idx := make(map[string]models.RecitationItem, len(recitations))
	for _, r := range recitations {
		idx[r.ID] = r
	}
	return idx
}()

// Recitations returns a copy of the catalog items in catalog order.
func Recitations() []models.RecitationItem {
	return append([]models.RecitationItem(nil), recitations...)
}

// RecitationIDs returns the catalog ids in catalog order.
func RecitationIDs() []string {
	ids := make([]string, len(recitations))
	for i, r := range recitations {
		ids[i] = r.ID
	}
	return ids
}

// Recitation looks up a catalog item by id.
func Recitation(id string) (models.RecitationItem, bool) {
	r, ok := recitationIndex[id]
	return r, ok
}

func IsCatalogItem(id string) bool {
	_, ok := recitationIndex[id]
	return ok
}

func IsPrayer(key models.PrayerKey) bool {
	for _, p := range Prayers {
		if p.Key == key {
			return true
		}
	}
	return false
}

func IsCategory(id models.Category) bool {
	for _, c := range Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func IsGoodDeed(key models.GoodDeed) bool {
	for _, d := range GoodDeeds {
		if d.Key == key {
			return true
		}
	}
	return false
}

func IsSound(id string) bool {
	for _, s := range Sounds {
		if s.ID == id {
			return true
		}
	}
	return false
}

// DefaultReminders returns a fresh copy of the default reminder schedule.
func DefaultReminders() []models.Reminder {
	return []models.Reminder{
		{ID: constants.ReminderFajr, Label: "Fajr prayer", Time: "05:00", Enabled: true},
		{ID: constants.ReminderMorningAdhkar, Label: "Morning adhkar", Time: "06:00", Enabled: true},
		{ID: constants.ReminderEveningAdhkar, Label: "Evening adhkar", Time: "17:30", Enabled: true},
		{ID: constants.ReminderDailyChallenge, Label: "Daily challenge", Time: "10:00", Enabled: true},
	}
}

// DefaultSettings returns the settings of a fresh install: default reminders,
// the full catalog selected in catalog order and no custom items.
func DefaultSettings() models.Settings {
	return models.Settings{
		Reminders:         DefaultReminders(),
		SelectedItemIDs:   RecitationIDs(),
		Order:             RecitationIDs(),
		CustomItems:       []models.RecitationItem{},
		NotificationSound: constants.DefaultNotificationSound,
	}
}
