package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// Profile mirrors the JSON layout of a personal profile document.
type Profile struct {
	PersonalInfo   PersonalInfo        `json:"personal_info"`
	Education      []Education         `json:"education"`
	Experience     []Experience        `json:"experience"`
	Skills         map[string][]string `json:"skills"`
	Projects       []Project           `json:"projects"`
	Certifications []Certification     `json:"certifications"`
	Languages      []Language          `json:"languages"`
}

// PersonalInfo holds the identity block of a profile.
type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Summary  string `json:"summary"`
}

// Education is one degree entry.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Location    string `json:"location"`
	Year        string `json:"year"`
}

// Experience is one employment entry.
type Experience struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	Period           string   `json:"period"`
	Responsibilities []string `json:"responsibilities"`
}

// Project is one portfolio entry.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// Certification is one credential entry.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   string `json:"year"`
}

// Language is one spoken-language entry.
type Language struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// LoadProfile replaces the store's contents with documents flattened from
// the profile JSON at path, then persists the result.
func (s *Store) LoadProfile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}
	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return fmt.Errorf("decode profile: %w", err)
	}

	s.Clear()

	info := profile.PersonalInfo
	if err := s.Append(fmt.Sprintf("%s - %s", info.Name, info.Title), Metadata{Type: TypeHeader}); err != nil {
		return err
	}
	contact := fmt.Sprintf("Contact: %s | %s | %s", info.Email, info.Phone, info.Location)
	if err := s.Append(contact, Metadata{Type: TypeContact}); err != nil {
		return err
	}
	if info.Summary != "" {
		if err := s.Append(info.Summary, Metadata{Type: TypeSummary}); err != nil {
			return err
		}
	}

	for _, edu := range profile.Education {
		text := fmt.Sprintf("%s from %s, %s (%s)", edu.Degree, edu.Institution, edu.Location, edu.Year)
		if err := s.Append(text, Metadata{Type: TypeEducation}); err != nil {
			return err
		}
	}

	for _, exp := range profile.Experience {
		header := fmt.Sprintf("%s at %s, %s (%s)", exp.Title, exp.Company, exp.Location, exp.Period)
		if err := s.Append(header, Metadata{Type: TypeExperienceHeader}); err != nil {
			return err
		}
		for _, duty := range exp.Responsibilities {
			if err := s.Append(duty, Metadata{Type: TypeExperienceDetail}); err != nil {
				return err
			}
		}
	}

	// Map iteration order is random; sort so repeated loads produce the
	// same document sequence and an identical file on disk.
	for _, category := range sortedKeys(profile.Skills) {
		label := titleCase(strings.ReplaceAll(category, "_", " "))
		text := fmt.Sprintf("%s: %s", label, strings.Join(profile.Skills[category], ", "))
		if err := s.Append(text, Metadata{Type: TypeSkills}); err != nil {
			return err
		}
	}

	for _, project := range profile.Projects {
		text := fmt.Sprintf("Project: %s - %s", project.Name, project.Description)
		if err := s.Append(text, Metadata{Type: TypeProject}); err != nil {
			return err
		}
		if len(project.Technologies) > 0 {
			tech := fmt.Sprintf("Technologies: %s", strings.Join(project.Technologies, ", "))
			if err := s.Append(tech, Metadata{Type: TypeProjectTech}); err != nil {
				return err
			}
		}
	}

	for _, cert := range profile.Certifications {
		text := fmt.Sprintf("%s (%s, %s)", cert.Name, cert.Issuer, cert.Year)
		if err := s.Append(text, Metadata{Type: TypeCertification}); err != nil {
			return err
		}
	}

	for _, lang := range profile.Languages {
		text := fmt.Sprintf("%s: %s", lang.Name, lang.Level)
		if err := s.Append(text, Metadata{Type: TypeLanguage}); err != nil {
			return err
		}
	}

	s.logger.Info("profile loaded",
		zap.String("path", path),
		zap.Int("documents", s.Count()))
	return s.Save()
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// titleCase uppercases the first rune of each word and lowercases the rest.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
