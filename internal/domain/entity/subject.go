package entity

import (
	"time"

	"github.com/google/uuid"
)

// SubTopic представляет подтему внутри темы
type SubTopic struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
	Progress  int        `json:"progress"` // 0-100, производное от истории боев
}

// Topic представляет тему внутри предмета
type Topic struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
	SubTopics []SubTopic `json:"subTopics"`
	Progress  int        `json:"progress"` // 0-100, производное от истории боев
}

// Subject представляет предмет — корень дерева тем
type Subject struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Topics    []Topic   `json:"topics"`
	Progress  int       `json:"progress"` // 0-100, производное от истории боев
	CreatedAt time.Time `json:"createdAt"`
}

// NewSubject создает новый предмет без тем
func NewSubject(name string) *Subject {
	return &Subject{
		ID:        uuid.NewString(),
		Name:      name,
		Topics:    []Topic{},
		CreatedAt: time.Now(),
	}
}

// FindTopic возвращает тему по ID или nil
func (s *Subject) FindTopic(topicID string) *Topic {
	for i := range s.Topics {
		if s.Topics[i].ID == topicID {
			return &s.Topics[i]
		}
	}
	return nil
}

// FindSubTopic возвращает подтему по ID или nil
func (t *Topic) FindSubTopic(subTopicID string) *SubTopic {
	for i := range t.SubTopics {
		if t.SubTopics[i].ID == subTopicID {
			return &t.SubTopics[i]
		}
	}
	return nil
}

// AllQuestions возвращает все вопросы темы, включая вопросы подтем
func (t *Topic) AllQuestions() []Question {
	questions := make([]Question, 0, len(t.Questions))
	questions = append(questions, t.Questions...)
	for _, st := range t.SubTopics {
		questions = append(questions, st.Questions...)
	}
	return questions
}
