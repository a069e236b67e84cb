package utils

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"

	"strokesense/internal/models"
	"strokesense/internal/repository"
)

const (
	DefaultNumUsers   = 50
	readingsPerUser   = 3
	samplesPerReading = 1870
)

// SeedDemoData populates the store with synthetic users and ECG captures so
// the prediction endpoints can be exercised locally.
func SeedDemoData(users repository.UserAttributesRepository, readings repository.ReadingRepository, numUsers int) error {
	ctx := context.Background()

	for i := 1; i <= numUsers; i++ {
		userID := fmt.Sprintf("u-%04d", i)

		attrs := &models.UserAttributes{
			UserID:          userID,
			Gender:          pick(models.Genders),
			Age:             20 + rand.Intn(60),
			Hypertension:    rand.Intn(2),
			EverMarried:     pick(models.MarriedStatuses),
			WorkType:        pick(models.WorkTypes),
			ResidenceType:   pick(models.ResidenceTypes),
			AvgGlucoseLevel: 70 + rand.Float64()*130,
			BMI:             18 + rand.Float64()*22,
			SmokingStatus:   pick(models.SmokingStatuses),
		}
		if err := users.SaveAttributes(ctx, attrs); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", userID, err)
		}

		for j := 0; j < readingsPerUser; j++ {
			reading := &models.ECGReading{
				UserID:  userID,
				Samples: syntheticECG(samplesPerReading),
			}
			if err := readings.SaveReading(ctx, reading); err != nil {
				return fmt.Errorf("failed to seed reading for user %s: %w", userID, err)
			}
		}

		if i%10 == 0 {
			log.Printf("Seeded %d/%d users", i, numUsers)
		}
	}

	log.Printf("Seeding complete: %d users, %d readings each", numUsers, readingsPerUser)
	return nil
}

// syntheticECG produces a plausible raw capture: a noisy sine with periodic
// spikes standing in for QRS complexes, in raw ADC counts.
func syntheticECG(n int) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		base := 512 + 120*math.Sin(float64(i)/12)
		if i%150 < 4 {
			base += 380
		}
		samples[i] = math.Round(base + rand.Float64()*30)
	}
	return samples
}

func pick(set []string) string {
	return set[rand.Intn(len(set))]
}
