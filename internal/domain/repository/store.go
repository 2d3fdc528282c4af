package repository

// KeyValueStore определяет контракт хранилища: четыре логические коллекции
// (subjects, enemies, quizResults, character) читаются и пишутся целиком
// как JSON-документы. Ядро не требует частичного или потокового чтения.
type KeyValueStore interface {
	// Get возвращает документ по ключу или ErrNotFound
	Get(key string) ([]byte, error)
	// Put сохраняет документ по ключу, перезаписывая существующий
	Put(key string, value []byte) error
}

// Ключи логических коллекций в хранилище
const (
	KeySubjects    = "subjects"
	KeyEnemies     = "enemies"
	KeyQuizResults = "quizResults"
	KeyCharacter   = "character"
)
