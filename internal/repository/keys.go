package repository

// Persisted key names. They match the keys the browser client has always
// written so existing exports import unchanged.
const (
	KeySessionAccount = "learnmate_user"
	KeyAccounts       = "learnmate_users"
	KeyRecentTopics   = "recentTopics"
	KeyTotalStudyTime = "totalStudyTime"
	KeyLessonsDone    = "learningStreak"
	KeyCurrentTopic   = "currentTopic"
	KeyLearningStyle  = "learningStyle"
	KeyStudyRooms     = "studyRooms"
	KeyLastTopic      = "lastTopic"
	KeyLastStyle      = "lastStyle"

	KeyCurrentLesson  = "currentLesson"
	KeyLessonSeq      = "lessonSeq"
	KeyAwardedLessons = "awardedLessons"
)
