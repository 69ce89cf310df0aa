// Package seed provides the demo faults loaded into an empty database.
package seed

import (
	"time"

	"github.com/rpggio/faultdesk/internal/domain/fault"
)

// Faults returns the demo data set with timestamps relative to now.
func Faults(now time.Time) []fault.Fault {
	ago := func(d time.Duration) time.Time { return now.Add(-d) }
	day := 24 * time.Hour
	completed := ago(day)

	return []fault.Fault{
		{
			ID:          1,
			Title:       "Klima Arızası",
			Description: "Ofis katındaki klima çalışmıyor, hava sıcaklığı çok yükseldi. AC ünitesinden anormal ses geliyor.",
			Status:      fault.StatusPending,
			Priority:    fault.PriorityHigh,
			Location:    "A Blok - 3. Kat - Oda 301",
			ReportedBy:  "Mehmet Demir",
			CreatedAt:   ago(2 * day),
			UpdatedAt:   ago(2 * day),
		},
		{
			ID:          2,
			Title:       "Su Kaçağı",
			Description: "Mutfağın altından su sızıntısı var, zemin ıslak. Su saatinden sonra 5L/saat kayıp var.",
			Status:      fault.StatusInProgress,
			Priority:    fault.PriorityMedium,
			Location:    "B Blok - Zemin Kat - Mutfak",
			ReportedBy:  "Ayşe Kaya",
			AssignedTo:  "Teknisyen Ali",
			CreatedAt:   ago(day),
			UpdatedAt:   ago(6 * time.Hour),
		},
		{
			ID:          3,
			Title:       "Elektrik Kesintisi",
			Description: "Koridordaki aydınlatma çalışmıyor. Elektrik panosunda sigorta atması mevcut.",
			Status:      fault.StatusCompleted,
			Priority:    fault.PriorityCritical,
			Location:    "C Blok - 2. Kat - Ana Koridor",
			ReportedBy:  "Can Öztürk",
			AssignedTo:  "Teknisyen Veli",
			CreatedAt:   ago(3 * day),
			UpdatedAt:   ago(day),
			CompletedAt: &completed,
		},
		{
			ID:          4,
			Title:       "Asansör Arızası",
			Description: "A Blok asansörü 2. katta sıkışmış durumda. Acil müdahale gerekiyor.",
			Status:      fault.StatusPending,
			Priority:    fault.PriorityCritical,
			Location:    "A Blok - Asansör 1",
			ReportedBy:  "Zeynep Şahin",
			CreatedAt:   ago(4 * time.Hour),
			UpdatedAt:   ago(4 * time.Hour),
		},
		{
			ID:          5,
			Title:       "Kamera Sistemi Arızası",
			Description: "Güvenlik kameralarının 3 tanesi çalışmıyor. Güvenlik açığı oluşmuş durumda.",
			Status:      fault.StatusInProgress,
			Priority:    fault.PriorityHigh,
			Location:    "Ana Bina - Güvenlik Odası",
			ReportedBy:  "Güvenlik Görevlisi",
			AssignedTo:  "Teknisyen Mehmet",
			CreatedAt:   ago(12 * time.Hour),
			UpdatedAt:   ago(2 * time.Hour),
		},
	}
}
