package handlers

import (
	"net/http"
)

// Router bundles every handler the server mounts
type Router struct {
	Middleware *Middleware
	Startup    *StartupStatus
	Auth       *AuthHandler
	Learning   *LearningHandler
	Quiz       *QuizHandler
	Flashcards *FlashcardHandler
	Rooms      *RoomHandler

	AudioDir       string
	StaticDir      string
	MetricsHandler http.Handler
}

// Handler registers every route and wraps the mux with request logging
func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	m := rt.Middleware

	// Infrastructure
	mux.HandleFunc("GET /health", rt.Startup.Health)
	if rt.MetricsHandler != nil {
		mux.Handle("GET /metrics", rt.MetricsHandler)
	}
	if rt.AudioDir != "" {
		mux.Handle("GET /audio/", http.StripPrefix("/audio/", http.FileServer(http.Dir(rt.AudioDir))))
	}
	if rt.StaticDir != "" {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(rt.StaticDir))))
	}

	// Accounts
	mux.HandleFunc("POST /api/auth/signup", m.RateLimit(rt.Auth.Signup))
	mux.HandleFunc("POST /api/auth/login", m.RateLimit(rt.Auth.Login))
	mux.HandleFunc("POST /api/auth/logout", rt.Auth.Logout)
	mux.HandleFunc("GET /api/session", rt.Auth.Session)
	mux.HandleFunc("PATCH /api/session", m.RequireSession(rt.Auth.PatchSession))

	// Learning flow
	mux.HandleFunc("GET /api/style", rt.Learning.GetStyle)
	mux.HandleFunc("PUT /api/style", rt.Learning.SelectStyle)
	mux.HandleFunc("POST /api/lessons", rt.Learning.StartLesson)
	mux.HandleFunc("GET /api/lessons/current", rt.Learning.CurrentLesson)
	mux.HandleFunc("POST /api/lessons/{id}/complete", rt.Learning.CompleteLesson)
	mux.HandleFunc("POST /api/lessons/bookmark", rt.Learning.Bookmark)
	mux.HandleFunc("GET /api/lessons/content", rt.Learning.Content)
	mux.HandleFunc("GET /api/lessons/audio", rt.Learning.Audio)
	mux.HandleFunc("GET /api/dashboard", rt.Learning.Dashboard)
	mux.HandleFunc("POST /api/doubts", rt.Learning.AskDoubt)
	mux.HandleFunc("POST /api/share", rt.Learning.Share)
	mux.HandleFunc("GET /share/{token}", rt.Learning.OpenShare)

	// Kinesthetic quiz
	mux.HandleFunc("GET /api/quiz", rt.Quiz.Get)
	mux.HandleFunc("POST /api/quiz/answer", rt.Quiz.Answer)
	mux.HandleFunc("POST /api/quiz/next", rt.Quiz.Next)
	mux.HandleFunc("POST /api/quiz/reset", rt.Quiz.Reset)

	// Flashcards
	mux.HandleFunc("GET /api/flashcards", rt.Flashcards.Get)
	mux.HandleFunc("POST /api/flashcards/{id}/favorite", rt.Flashcards.Favorite)
	mux.HandleFunc("POST /api/flashcards/{direction}", rt.Flashcards.Move)

	// Study rooms
	mux.HandleFunc("GET /api/rooms", rt.Rooms.List)
	mux.HandleFunc("POST /api/rooms", m.RequireSession(rt.Rooms.Create))
	mux.HandleFunc("POST /api/rooms/{id}/join", m.RequireSession(rt.Rooms.Join))

	return m.Logging(mux)
}
