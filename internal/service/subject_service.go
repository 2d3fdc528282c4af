package service

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/entity"
	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/domain/repository"
	apperrors "github.com/ERINGRYD/spartano-71e509fa-sub000/internal/pkg/errors"
)

// SubjectService отвечает за дерево предметов и производный прогресс узлов
type SubjectService struct {
	subjectRepo repository.SubjectRepository
	resultRepo  repository.QuizResultRepository
}

// NewSubjectService создает новый сервис предметов
func NewSubjectService(subjectRepo repository.SubjectRepository, resultRepo repository.QuizResultRepository) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		resultRepo:  resultRepo,
	}
}

// GetSubjects возвращает дерево предметов с пересчитанным прогрессом узлов.
// Прогресс — модель чтения: равен агрегированной правильности истории боев
// по вопросам узла и никогда не устанавливается напрямую.
func (s *SubjectService) GetSubjects() ([]entity.Subject, error) {
	subjects, err := s.subjectRepo.GetAll()
	if err != nil {
		return nil, err
	}
	results, err := s.resultRepo.GetAll()
	if err != nil {
		return nil, err
	}

	// Статистика правильности по каждому вопросу из журнала
	type questionTotals struct {
		correct int
		total   int
	}
	byQuestion := make(map[string]*questionTotals)
	for _, r := range results {
		for _, a := range r.Answers {
			if a.QuestionID == "" {
				continue
			}
			t, ok := byQuestion[a.QuestionID]
			if !ok {
				t = &questionTotals{}
				byQuestion[a.QuestionID] = t
			}
			t.total++
			if a.Correct {
				t.correct++
			}
		}
	}

	progressFor := func(questions []entity.Question) int {
		correct, total := 0, 0
		for _, q := range questions {
			if t, ok := byQuestion[q.ID]; ok {
				correct += t.correct
				total += t.total
			}
		}
		if total == 0 {
			return 0
		}
		return 100 * correct / total
	}

	for i := range subjects {
		var subjectQuestions []entity.Question
		for j := range subjects[i].Topics {
			topic := &subjects[i].Topics[j]
			for k := range topic.SubTopics {
				st := &topic.SubTopics[k]
				st.Progress = progressFor(st.Questions)
			}
			topic.Progress = progressFor(topic.AllQuestions())
			subjectQuestions = append(subjectQuestions, topic.AllQuestions()...)
		}
		subjects[i].Progress = progressFor(subjectQuestions)
	}

	return subjects, nil
}

// CreateSubject создает предмет; имя не должно совпадать с именем
// существующего предмета (точное сравнение, с учетом регистра)
func (s *SubjectService) CreateSubject(name string) (*entity.Subject, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: subject name is empty", apperrors.ErrValidation)
	}

	subjects, err := s.subjectRepo.GetAll()
	if err != nil {
		return nil, err
	}
	for _, existing := range subjects {
		if existing.Name == name {
			return nil, fmt.Errorf("%w: subject %q", apperrors.ErrDuplicateName, name)
		}
	}

	subject := entity.NewSubject(name)
	subjects = append(subjects, *subject)
	if err := s.subjectRepo.SaveAll(subjects); err != nil {
		return nil, err
	}

	log.Printf("[SubjectService] Создан предмет %q (%s)", name, subject.ID)
	return subject, nil
}

// AddTopic добавляет тему в предмет; имя не должно совпадать с именем
// соседней темы того же предмета
func (s *SubjectService) AddTopic(subjectID, name string) (*entity.Topic, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: topic name is empty", apperrors.ErrValidation)
	}

	subjects, err := s.subjectRepo.GetAll()
	if err != nil {
		return nil, err
	}

	for i := range subjects {
		if subjects[i].ID != subjectID {
			continue
		}
		for _, existing := range subjects[i].Topics {
			if existing.Name == name {
				return nil, fmt.Errorf("%w: topic %q", apperrors.ErrDuplicateName, name)
			}
		}

		topic := entity.Topic{
			ID:        uuid.NewString(),
			Name:      name,
			Questions: []entity.Question{},
			SubTopics: []entity.SubTopic{},
		}
		subjects[i].Topics = append(subjects[i].Topics, topic)
		if err := s.subjectRepo.SaveAll(subjects); err != nil {
			return nil, err
		}

		log.Printf("[SubjectService] В предмет %s добавлена тема %q (%s)", subjectID, name, topic.ID)
		return &topic, nil
	}

	return nil, apperrors.ErrNotFound
}

// AddSubTopic добавляет подтему в тему; имя не должно совпадать с именем
// соседней подтемы той же темы
func (s *SubjectService) AddSubTopic(subjectID, topicID, name string) (*entity.SubTopic, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: subtopic name is empty", apperrors.ErrValidation)
	}

	subjects, err := s.subjectRepo.GetAll()
	if err != nil {
		return nil, err
	}

	for i := range subjects {
		if subjects[i].ID != subjectID {
			continue
		}
		topic := subjects[i].FindTopic(topicID)
		if topic == nil {
			return nil, apperrors.ErrNotFound
		}
		for _, existing := range topic.SubTopics {
			if existing.Name == name {
				return nil, fmt.Errorf("%w: subtopic %q", apperrors.ErrDuplicateName, name)
			}
		}

		subTopic := entity.SubTopic{
			ID:        uuid.NewString(),
			Name:      name,
			Questions: []entity.Question{},
		}
		topic.SubTopics = append(topic.SubTopics, subTopic)
		if err := s.subjectRepo.SaveAll(subjects); err != nil {
			return nil, err
		}

		log.Printf("[SubjectService] В тему %s добавлена подтема %q (%s)", topicID, name, subTopic.ID)
		return &subTopic, nil
	}

	return nil, apperrors.ErrNotFound
}

// AddQuestion добавляет вопрос в тему или подтему (при непустом subTopicID).
// Инварианты вопроса проверяются до записи; идентификаторы вопроса и
// вариантов назначаются здесь.
func (s *SubjectService) AddQuestion(subjectID, topicID, subTopicID string, question entity.Question) (*entity.Question, error) {
	question.ID = uuid.NewString()
	for i := range question.Options {
		if question.Options[i].ID == "" {
			question.Options[i].ID = uuid.NewString()
		}
	}
	question.Difficulty = entity.ParseDifficulty(string(question.Difficulty))

	if err := question.Validate(); err != nil {
		return nil, err
	}

	subjects, err := s.subjectRepo.GetAll()
	if err != nil {
		return nil, err
	}

	for i := range subjects {
		if subjects[i].ID != subjectID {
			continue
		}
		topic := subjects[i].FindTopic(topicID)
		if topic == nil {
			return nil, apperrors.ErrNotFound
		}

		if subTopicID != "" {
			subTopic := topic.FindSubTopic(subTopicID)
			if subTopic == nil {
				return nil, apperrors.ErrNotFound
			}
			subTopic.Questions = append(subTopic.Questions, question)
		} else {
			topic.Questions = append(topic.Questions, question)
		}

		if err := s.subjectRepo.SaveAll(subjects); err != nil {
			return nil, err
		}
		return &question, nil
	}

	return nil, apperrors.ErrNotFound
}

// QuestionPool возвращает вопросы, доступные врагу: вопросы его подтемы,
// либо все вопросы темы (включая подтемы), когда подтема не задана
func (s *SubjectService) QuestionPool(enemy *entity.Enemy) ([]entity.Question, error) {
	subjects, err := s.subjectRepo.GetAll()
	if err != nil {
		return nil, err
	}

	for i := range subjects {
		if subjects[i].ID != enemy.SubjectID {
			continue
		}
		topic := subjects[i].FindTopic(enemy.TopicID)
		if topic == nil {
			return nil, apperrors.ErrNotFound
		}
		if enemy.SubTopicID != "" {
			subTopic := topic.FindSubTopic(enemy.SubTopicID)
			if subTopic == nil {
				return nil, apperrors.ErrNotFound
			}
			return subTopic.Questions, nil
		}
		return topic.AllQuestions(), nil
	}

	return nil, apperrors.ErrNotFound
}

// QuestionIndex возвращает все вопросы всех предметов, сгруппированные по ID
func (s *SubjectService) QuestionIndex() (map[string]entity.Question, error) {
	subjects, err := s.subjectRepo.GetAll()
	if err != nil {
		return nil, err
	}

	index := make(map[string]entity.Question)
	for _, subject := range subjects {
		for _, topic := range subject.Topics {
			for _, q := range topic.AllQuestions() {
				index[q.ID] = q
			}
		}
	}
	return index, nil
}
