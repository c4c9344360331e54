// Package seed bootstraps the academic catalog with the default
// semesters and courses on first start.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/rcastro/tutormatch/internal/app/models"
	"github.com/rcastro/tutormatch/internal/app/repositories"
	"github.com/rcastro/tutormatch/internal/pkg/metrics"
)

type semesterSeed struct {
	name    string
	number  int
	courses []string
}

// catalog holds the default academic plan, one entry per semester. Courses
// are created and linked under their semester, so a semester that fails to
// insert takes its courses with it.
var catalog = []semesterSeed{
	{"First", 1, []string{
		"Introducción a los Algoritmos",
	}},
	{"Second", 2, []string{
		"Algoritmos",
	}},
	{"Third", 3, []string{
		"Algoritmos y Estructuras de Datos",
		"Diseño y Patrones de Software",
	}},
	{"Fourth", 4, []string{
		"Diseño de Base de Datos",
		"IHC y Tecnologías Móviles",
	}},
	{"Fifth", 5, []string{
		"Aplicaciones Web",
		"Desarrollo de Aplicaciones Open Source",
	}},
	{"Sixth", 6, []string{
		"Aplicaciones para Dispositivos Móviles",
		"Complejidad Algorítmica",
	}},
	{"Seventh", 7, []string{
		"Diseño de Experimentos de Ingeniería de Software",
		"Fundamentos de Arquitectura de Software",
	}},
	{"Eighth", 8, []string{
		"Arquitecturas de Software Emergentes",
		"Gerencia de Proyectos en Computación",
	}},
}

// CreateDefaultData populates semesters, courses and their links. It is a
// no-op when semesters already exist, so repeated starts stay idempotent.
// Failures are logged and collected; the rest of the catalog still goes in.
func CreateDefaultData(ctx context.Context, repos *repositories.Repositories, collector *metrics.Collector, lgr zerolog.Logger) error {
	count, err := repos.SemesterRepository.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		lgr.Info().Int64("semesters", count).Msg("Catalog already seeded, skipping")
		return nil
	}

	lgr.Info().Msg("Seeding default semesters and courses...")

	now := time.Now()
	var finalErr error
	seeded := 0

	for _, sem := range catalog {
		semesterID, err := repos.SemesterRepository.Create(ctx, &models.Semester{
			Name:      sem.name,
			CreatedAt: &now,
			UpdatedAt: &now,
		})
		if err != nil {
			lgr.Error().Err(err).Str("semester", sem.name).Msg("Error creating semester")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		seeded++

		for _, courseName := range sem.courses {
			courseID, err := repos.CourseRepository.Create(ctx, &models.Course{
				Name:           courseName,
				SemesterNumber: sem.number,
				CreatedAt:      &now,
				UpdatedAt:      &now,
			})
			if err != nil {
				lgr.Error().Err(err).Str("course", courseName).Msg("Error creating course")
				finalErr = errors.Join(finalErr, err)
				continue
			}
			seeded++

			if err := repos.SemesterRepository.AddCourse(ctx, semesterID, courseID); err != nil {
				lgr.Error().Err(err).Str("course", courseName).Msg("Error linking course to semester")
				finalErr = errors.Join(finalErr, err)
				continue
			}
			seeded++
		}
	}

	if collector != nil {
		collector.RecordSeededRows(seeded)
	}
	lgr.Info().Int("rows", seeded).Msg("Catalog seeding finished")
	return finalErr
}
