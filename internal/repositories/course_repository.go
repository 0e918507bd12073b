package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/learnledger/backend/internal/apperr"
	"github.com/learnledger/backend/internal/models"
)

const (
	selectCoursesQuery   = `SELECT id, title, description, image_url, difficulty, topics, duration FROM courses`
	selectModulesQuery   = `SELECT id, course_id, title, content, sort_order FROM course_modules`
	selectExercisesQuery = `SELECT id, course_id, module_id, question, exercise_type, options, correct_answer FROM exercises`
	courseOrder          = ` ORDER BY id`
	moduleOrder          = ` ORDER BY course_id, sort_order, id`
	exerciseOrder        = ` ORDER BY course_id, module_id, id`
	byCourseIDCondition  = ` WHERE course_id = ?`
	byIDCondition        = ` WHERE id = ?`
)

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// FetchAll retrieves all courses with their modules and exercises
func (r *courseRepository) FetchAll(ctx context.Context) ([]models.Course, error) {
	rows, err := r.db.QueryContext(ctx, selectCoursesQuery+courseOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	modules, err := r.fetchModules(ctx, selectModulesQuery+moduleOrder)
	if err != nil {
		return nil, err
	}
	exercises, err := r.fetchExercises(ctx, selectExercisesQuery+exerciseOrder)
	if err != nil {
		return nil, err
	}

	for i := range courses {
		courses[i].Modules = assembleModules(courses[i].ID, modules, exercises)
	}

	return courses, nil
}

// FetchByID retrieves a course with its modules and exercises
func (r *courseRepository) FetchByID(ctx context.Context, id string) (*models.Course, error) {
	row := r.db.QueryRowContext(ctx, selectCoursesQuery+byIDCondition, id)
	course, err := scanCourse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("course %s", id)
	}
	if err != nil {
		return nil, err
	}

	modules, err := r.fetchModules(ctx, selectModulesQuery+byCourseIDCondition+moduleOrder, id)
	if err != nil {
		return nil, err
	}
	exercises, err := r.fetchExercises(ctx, selectExercisesQuery+byCourseIDCondition+exerciseOrder, id)
	if err != nil {
		return nil, err
	}

	course.Modules = assembleModules(course.ID, modules, exercises)
	return course, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*models.Course, error) {
	var course models.Course
	var imageURL sql.NullString
	var topics []byte
	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&imageURL,
		&course.Difficulty,
		&topics,
		&course.Duration,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan course: %w", err)
	}

	course.ImageURL = imageURL.String
	course.Topics, err = decodeStrings(topics)
	if err != nil {
		return nil, fmt.Errorf("failed to decode topics of course %s: %w", course.ID, err)
	}
	return &course, nil
}

func (r *courseRepository) fetchModules(ctx context.Context, query string, args ...any) ([]models.Module, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query modules: %w", err)
	}
	defer rows.Close()

	var modules []models.Module
	for rows.Next() {
		var module models.Module
		if err := rows.Scan(&module.ID, &module.CourseID, &module.Title, &module.Content, &module.Order); err != nil {
			return nil, fmt.Errorf("failed to scan module: %w", err)
		}
		modules = append(modules, module)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return modules, nil
}

type exerciseRow struct {
	courseID string
	moduleID string
	exercise models.Exercise
}

func (r *courseRepository) fetchExercises(ctx context.Context, query string, args ...any) ([]exerciseRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query exercises: %w", err)
	}
	defer rows.Close()

	var exercises []exerciseRow
	for rows.Next() {
		var row exerciseRow
		var options []byte
		var correctAnswer sql.NullString
		err := rows.Scan(
			&row.exercise.ID,
			&row.courseID,
			&row.moduleID,
			&row.exercise.Question,
			&row.exercise.Type,
			&options,
			&correctAnswer,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		if len(options) > 0 {
			if row.exercise.Options, err = decodeStrings(options); err != nil {
				return nil, fmt.Errorf("failed to decode options of exercise %s: %w", row.exercise.ID, err)
			}
		}
		row.exercise.CorrectAnswer = correctAnswer.String
		exercises = append(exercises, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return exercises, nil
}

// assembleModules picks the modules of a course and attaches their exercises
func assembleModules(courseID string, modules []models.Module, exercises []exerciseRow) []models.Module {
	result := []models.Module{}
	for _, module := range modules {
		if module.CourseID != courseID {
			continue
		}
		module.Exercises = []models.Exercise{}
		for _, row := range exercises {
			if row.courseID == courseID && row.moduleID == module.ID {
				module.Exercises = append(module.Exercises, row.exercise)
			}
		}
		result = append(result, module)
	}
	return result
}

// decodeStrings decodes a JSON string array column, treating NULL as empty
func decodeStrings(raw []byte) ([]string, error) {
	values := []string{}
	if len(raw) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// encodeStrings encodes a string slice for a JSON column
func encodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
