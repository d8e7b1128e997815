package db

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// demo cities the seeder scatters candidates around
var demoCities = []struct {
	name     string
	lat, lon float64
}{
	{"london", 51.5074, -0.1278},
	{"manchester", 53.4808, -2.2426},
	{"sydney", -33.8688, 151.2093},
	{"new_york", 40.7128, -74.0060},
}

var (
	demoGenders   = []string{"male", "female", "non_binary"}
	demoBodyTypes = []string{"slim", "athletic", "average", "curvy", "muscular", "plus_size"}
	demoRaces     = []string{"asian", "black", "hispanic", "middle_eastern", "mixed", "white", "other"}
	demoJobTypes  = []string{"full_time", "part_time", "contract", "temporary", "internship", "freelance"}
)

// Reset clears every table owned by the engine.
func Reset(db *gorm.DB) error {
	for _, table := range []string{"matches", "swipe_decisions", "candidates"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// SeedDemo resets the database and populates it with demo data.
//
// Behavior:
//  1. Clears candidates, decisions and matches.
//  2. Creates perVertical candidates for each entity type, jittered around a
//     few cities; about one in ten has no location.
//  3. Profiles swipe on ~12 other profiles with ~70% likes; every 3rd pair is
//     made mutual and gets its match row.
//
// seed fixes the random source so runs are reproducible.
func SeedDemo(db *gorm.DB, log *slog.Logger, perVertical int, seed int64) error {
	r := rand.New(rand.NewSource(seed))

	if err := Reset(db); err != nil {
		return err
	}
	log.Info("cleared existing data")

	now := time.Now().UTC()
	var candidates []Candidate
	for _, entityType := range []string{"profile", "listing", "content", "job", "event"} {
		for i := 1; i <= perVertical; i++ {
			candidates = append(candidates, demoCandidate(r, entityType, uint64(i), now))
		}
	}
	if err := db.CreateInBatches(&candidates, 200).Error; err != nil {
		return fmt.Errorf("failed to seed candidates: %w", err)
	}
	log.Info("seeded candidates", "count", len(candidates))

	decisions, matches := 0, 0
	counter := 0
	for viewer := 1; viewer <= perVertical; viewer++ {
		for j := 0; j < 12; j++ {
			candidate := r.Intn(perVertical) + 1
			if candidate == viewer {
				continue
			}

			liked := r.Intn(100) < 70
			mutual := counter%3 == 0
			counter++
			if mutual {
				liked = true
			}

			n, err := insertDecision(db, uint64(viewer), uint64(candidate), liked, r.Intn(10) == 0)
			if err != nil {
				return err
			}
			decisions += n
			if !mutual {
				continue
			}

			n, err = insertDecision(db, uint64(candidate), uint64(viewer), true, false)
			if err != nil {
				return err
			}
			decisions += n

			// only pairs whose stored decisions are both likes become matches
			var likes int64
			if err := db.Model(&SwipeDecision{}).
				Where("((viewer_id = ? AND candidate_id = ?) OR (viewer_id = ? AND candidate_id = ?)) AND direction = ?",
					viewer, candidate, candidate, viewer, "LIKE").
				Count(&likes).Error; err != nil {
				return fmt.Errorf("failed to check reciprocal like: %w", err)
			}
			if likes < 2 {
				continue
			}
			a, b := uint64(min(viewer, candidate)), uint64(max(viewer, candidate))
			res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&Match{UserA: a, UserB: b})
			if res.Error != nil {
				return fmt.Errorf("failed to seed match: %w", res.Error)
			}
			matches += int(res.RowsAffected)
		}
	}
	log.Info("seeded swipes", "decisions", decisions, "matches", matches)
	return nil
}

func insertDecision(db *gorm.DB, viewer, candidate uint64, liked, superLike bool) (int, error) {
	direction := "PASS"
	if liked {
		direction = "LIKE"
	} else {
		superLike = false
	}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&SwipeDecision{
		ViewerID:    viewer,
		CandidateID: candidate,
		Direction:   direction,
		SuperLike:   superLike,
	})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to seed decision: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}

func demoCandidate(r *rand.Rand, entityType string, id uint64, now time.Time) Candidate {
	c := Candidate{
		EntityType:  entityType,
		ID:          id,
		Rating:      float64(r.Intn(41)+10) / 10,
		ReviewCount: r.Intn(500),
		FreshAt:     now.Add(-time.Duration(r.Intn(30*24)) * time.Hour),
	}
	if r.Intn(10) != 0 {
		city := demoCities[r.Intn(len(demoCities))]
		lat := city.lat + (r.Float64()-0.5)*0.4
		lon := city.lon + (r.Float64()-0.5)*0.4
		c.Lat, c.Lon = &lat, &lon
	}

	switch entityType {
	case "profile":
		age := 18 + r.Intn(42)
		c.Age = &age
		c.Gender = demoGenders[r.Intn(len(demoGenders))]
		c.BodyType = demoBodyTypes[r.Intn(len(demoBodyTypes))]
		c.Race = demoRaces[r.Intn(len(demoRaces))]
	case "job":
		c.JobType = demoJobTypes[r.Intn(len(demoJobTypes))]
		salary := float64(20000 + r.Intn(80)*1000)
		c.Price = &salary
	default:
		price := float64(r.Intn(20000)) / 100
		c.Price = &price
	}
	return c
}

// SeedMinimal inserts a small deterministic data set:
//   - profiles 1..4 around London, listing 1 without a location
//   - user1 ↔ user2 like each other (matched)
//   - user3 → user1 like (awaiting user1), user1 → user4 pass
func SeedMinimal(db *gorm.DB) error {
	if err := Reset(db); err != nil {
		return err
	}

	now := time.Now().UTC()
	point := func(lat, lon float64) (*float64, *float64) { return &lat, &lon }
	age := func(n int) *int { return &n }

	candidates := make([]Candidate, 0, 5)
	for i, gender := range []string{"male", "female", "female", "non_binary"} {
		lat, lon := point(51.5074-float64(i)*0.01, -0.1278)
		candidates = append(candidates, Candidate{
			EntityType: "profile", ID: uint64(i + 1), Lat: lat, Lon: lon,
			Gender: gender, Age: age(25 + i), Rating: 4, FreshAt: now,
		})
	}
	price := 49.99
	candidates = append(candidates, Candidate{EntityType: "listing", ID: 1, Price: &price, Rating: 4.5, ReviewCount: 12, FreshAt: now})
	if err := db.Create(&candidates).Error; err != nil {
		return err
	}

	decisions := []SwipeDecision{
		{ViewerID: 1, CandidateID: 2, Direction: "LIKE"},
		{ViewerID: 2, CandidateID: 1, Direction: "LIKE"},
		{ViewerID: 3, CandidateID: 1, Direction: "LIKE", SuperLike: true},
		{ViewerID: 1, CandidateID: 4, Direction: "PASS"},
	}
	if err := db.Create(&decisions).Error; err != nil {
		return err
	}

	return db.Create(&Match{UserA: 1, UserB: 2}).Error
}
