package main

import (
	"encoding/json"
	"log"
	"os"

	"lms/config"
	"lms/database"
	"lms/models"

	"gorm.io/datatypes"
)

type lessonImport struct {
	Title      string          `json:"title"`
	Duration   int             `json:"duration"`
	Type       string          `json:"type"`
	Content    json.RawMessage `json:"content"`
	OrderIndex int             `json:"order_index"`
}

type courseImport struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Color       string         `json:"color"`
	ImageURL    string         `json:"image_url"`
	Lessons     []lessonImport `json:"lessons"`
}

// Imports a course catalog from courses.json into the database. Lessons with
// content that does not match their declared type are skipped and logged.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	raw, err := os.ReadFile("courses.json")
	if err != nil {
		log.Fatalf("Failed to open courses.json: %v", err)
	}

	var catalog []courseImport
	if err := json.Unmarshal(raw, &catalog); err != nil {
		log.Fatalf("Failed to parse courses.json: %v", err)
	}

	db := database.Database.Db
	imported, skipped := 0, 0

	for _, entry := range catalog {
		if entry.Title == "" {
			log.Println("Skipping course with empty title")
			skipped++
			continue
		}

		course := models.Course{
			Title:       entry.Title,
			Description: entry.Description,
			Color:       entry.Color,
			ImageURL:    entry.ImageURL,
		}
		if err := db.Where("title = ?", entry.Title).FirstOrCreate(&course).Error; err != nil {
			log.Printf("Failed to create course %q: %v", entry.Title, err)
			skipped++
			continue
		}

		for _, l := range entry.Lessons {
			lesson := models.Lesson{
				CourseID:   course.ID,
				Title:      l.Title,
				Duration:   l.Duration,
				Type:       l.Type,
				Content:    datatypes.JSON(l.Content),
				OrderIndex: l.OrderIndex,
			}
			if _, err := lesson.DecodeContent(); err != nil {
				log.Printf("Skipping lesson %q in %q: %v", l.Title, entry.Title, err)
				skipped++
				continue
			}
			if err := db.Where("course_id = ? AND order_index = ?", course.ID, l.OrderIndex).
				FirstOrCreate(&lesson).Error; err != nil {
				log.Printf("Failed to create lesson %q: %v", l.Title, err)
				skipped++
				continue
			}
			imported++
		}
		imported++
	}

	log.Printf("Import finished: %d records imported, %d skipped", imported, skipped)
}
