package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/maozinhas/api/internal/models"
)

// DemoSeekerEmail identifies the demo seeker; its presence means the users
// collection is already seeded.
const DemoSeekerEmail = "maria.teste@maozinhas.com"

type Store interface {
	models.WorkerRepo
	models.UserRepo
}

// Summary counts the records created by a run. Records already present are skipped.
type Summary struct {
	Seekers int
	Workers int
}

// Run inserts the demo seeker and workers. It is idempotent: records are
// matched by email for the seeker and by uid for workers.
func Run(ctx context.Context, store Store, logger *slog.Logger) (*Summary, error) {
	if logger == nil {
		logger = slog.Default()
	}
	now := time.Now().UTC()
	summary := &Summary{}

	created, err := seedSeeker(ctx, store, now)
	if err != nil {
		return nil, err
	}
	if created != nil {
		summary.Seekers++
		logger.Info("seeding: created demo seeker", "id", created.ID.Hex(), "email", created.Email)
	} else {
		logger.Info("seeding: demo seeker already present; skipping")
	}

	for _, w := range demoWorkers(now) {
		existing, err := store.FindWorkers(ctx, models.WorkerQuery{UID: w.UID, Limit: 1})
		if err != nil {
			return nil, fmt.Errorf("check existing worker %s: %w", w.UID, err)
		}
		if len(existing) > 0 {
			logger.Info("seeding: worker already present; skipping", "uid", w.UID)
			continue
		}

		stored, err := store.InsertWorker(ctx, w)
		if err != nil {
			return nil, fmt.Errorf("insert worker %s: %w", w.UID, err)
		}
		summary.Workers++
		logger.Info("seeding: created worker", "id", stored.ID.Hex(), "name", stored.Name, "rating", stored.Rating)
	}
	return summary, nil
}

func seedSeeker(ctx context.Context, store Store, now time.Time) (*models.Seeker, error) {
	exists, err := store.UserEmailExists(ctx, DemoSeekerEmail)
	if err != nil {
		return nil, fmt.Errorf("check existing seeker: %w", err)
	}
	if exists {
		return nil, nil
	}

	seeker := models.NewSeeker(models.CreateSeekerInput{
		UID:      "test-user-uid-123",
		Email:    DemoSeekerEmail,
		Name:     "Maria Silva Teste",
		Phone:    "+5511987654321",
		PhotoURL: "https://i.pravatar.cc/150?img=1",
		UserType: models.UserTypeSeeker,
		Location: &models.Location{
			PostalCode:   "01310-100",
			Street:       "Avenida Paulista",
			Number:       "1578",
			Neighborhood: "Bela Vista",
			City:         "São Paulo",
			State:        "SP",
			Coordinates:  &models.Coordinates{Latitude: -23.561414, Longitude: -46.656081},
		},
	}, now)
	seeker.SearchHistory = append(seeker.SearchHistory, models.SearchEntry{
		Category:   models.CategoryCasa,
		PostalCode: "01310-100",
		Timestamp:  now,
	})

	created, err := store.InsertUser(ctx, seeker)
	if err != nil {
		return nil, fmt.Errorf("insert demo seeker: %w", err)
	}
	return created, nil
}

type demoWorker struct {
	in          models.CreateWorkerInput
	rating      float64
	reviewCount int
	portfolio   []string
	stats       models.WorkerStats
}

func weekdays(saturday, sunday bool, start, end string) *models.WeeklyAvailability {
	return &models.WeeklyAvailability{
		Monday: true, Tuesday: true, Wednesday: true, Thursday: true, Friday: true,
		Saturday: saturday, Sunday: sunday,
		StartTime: start, EndTime: end,
	}
}

// demoWorkers are approved and verified so that they show up in the
// featured and nearby listings straight away.
func demoWorkers(now time.Time) []*models.Worker {
	demos := []demoWorker{
		{
			in: models.CreateWorkerInput{
				UID:         "test-worker-uid-456",
				Email:       "joao.pintor@maozinhas.com",
				Name:        "João Silva",
				CompanyName: "João Pinturas e Reformas",
				Phone:       "+5511998765432",
				PhotoURL:    "https://i.pravatar.cc/150?img=12",
				TaxID:       "123.456.789-00",
				Description: "Pintor profissional com 15 anos de experiência em pintura residencial e comercial. Especializado em texturas, grafiato, epoxi e acabamentos especiais.",
				Category:    models.CategoryCasa,
				SubServices: []string{"pintor", "reformas"},
				PriceRange:  &models.PriceRange{Min: 150, Max: 300, Unit: "dia"},
				Availability: weekdays(true, false, "08:00", "18:00"),
				Location: &models.Location{
					PostalCode: "01310-200", Street: "Rua Augusta", Number: "2690",
					Neighborhood: "Consolação", City: "São Paulo", State: "SP",
					Coordinates: &models.Coordinates{Latitude: -23.557523, Longitude: -46.659668},
				},
			},
			rating:      4.8,
			reviewCount: 127,
			portfolio: []string{
				"https://images.unsplash.com/photo-1562259949-e8e7689d7828?w=500",
				"https://images.unsplash.com/photo-1589939705384-5185137a7f0f?w=500",
				"https://images.unsplash.com/photo-1581858726788-75bc0f1a4e8d?w=500",
			},
			stats: models.WorkerStats{Views: 1523, Contacts: 234, Hires: 89},
		},
		{
			in: models.CreateWorkerInput{
				UID:          "test-worker-uid-789",
				Email:        "maria.eletricista@maozinhas.com",
				Name:         "Maria Santos",
				CompanyName:  "Maria Elétrica",
				Phone:        "+5511987654333",
				PhotoURL:     "https://i.pravatar.cc/150?img=5",
				Description:  "Eletricista certificada com especialização em instalações residenciais e comerciais.",
				Category:     models.CategoryCasa,
				SubServices:  []string{"eletricista"},
				PriceRange:   &models.PriceRange{Min: 120, Max: 250, Unit: "servico"},
				Availability: weekdays(false, false, "", ""),
				Location: &models.Location{
					PostalCode: "01310-300", Street: "Rua da Consolação", Number: "3000",
					Neighborhood: "Consolação", City: "São Paulo", State: "SP",
				},
			},
			rating:      4.9,
			reviewCount: 89,
			stats:       models.WorkerStats{Views: 890, Contacts: 156, Hires: 67},
		},
		{
			in: models.CreateWorkerInput{
				UID:          "test-worker-uid-012",
				Email:        "carlos.encanador@maozinhas.com",
				Name:         "Carlos Oliveira",
				CompanyName:  "Carlos Hidráulica 24h",
				Phone:        "+5511987654444",
				PhotoURL:     "https://i.pravatar.cc/150?img=8",
				Description:  "Encanador com 20 anos de experiência. Atendimento 24h para emergências.",
				Category:     models.CategoryCasa,
				SubServices:  []string{"encanador"},
				PriceRange:   &models.PriceRange{Min: 100, Max: 200, Unit: "servico"},
				Availability: weekdays(true, true, "00:00", "23:59"),
				Location: &models.Location{
					PostalCode: "04101-000", Street: "Rua Vergueiro", Number: "1500",
					Neighborhood: "Paraíso", City: "São Paulo", State: "SP",
				},
			},
			rating:      4.7,
			reviewCount: 203,
			stats:       models.WorkerStats{Views: 2341, Contacts: 567, Hires: 234},
		},
		{
			in: models.CreateWorkerInput{
				UID:          "test-worker-uid-345",
				Email:        "ana.limpeza@maozinhas.com",
				Name:         "Ana Paula",
				CompanyName:  "Limpeza Express",
				Phone:        "+5511987654555",
				PhotoURL:     "https://i.pravatar.cc/150?img=9",
				Description:  "Serviços de limpeza residencial e pós-obra. Equipe treinada e produtos profissionais.",
				Category:     models.CategoryCasa,
				SubServices:  []string{"limpeza"},
				PriceRange:   &models.PriceRange{Min: 180, Max: 400, Unit: "servico"},
				Availability: weekdays(true, false, "", ""),
				Location: &models.Location{
					PostalCode: "05412-001", Street: "Rua Fradique Coutinho", Number: "1234",
					Neighborhood: "Pinheiros", City: "São Paulo", State: "SP",
				},
			},
			rating:      5.0,
			reviewCount: 312,
			stats:       models.WorkerStats{Views: 3421, Contacts: 789, Hires: 456},
		},
	}

	workers := make([]*models.Worker, 0, len(demos))
	for _, s := range demos {
		w := models.NewWorker(s.in, now)
		w.Status = models.StatusApproved
		w.Verified = true
		w.Rating = s.rating
		w.ReviewCount = s.reviewCount
		w.Stats = s.stats
		if s.portfolio != nil {
			w.Portfolio = s.portfolio
		}
		workers = append(workers, w)
	}
	return workers
}
