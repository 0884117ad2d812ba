// Package mocks provides gomock implementations of the core ports for service and handler tests.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	repo := mocks.NewMockApplicationRepository(ctrl)
//	repo.EXPECT().GetByID(gomock.Any(), id).Return(app, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=application_repository_mock.go github.com/technova/careers-api/internal/core ApplicationRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=contact_message_repository_mock.go github.com/technova/careers-api/internal/core ContactMessageRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=job_listing_repository_mock.go github.com/technova/careers-api/internal/core JobListingRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=file_store_mock.go github.com/technova/careers-api/internal/core FileStore

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=mailer_mock.go github.com/technova/careers-api/internal/core Mailer

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=rate_limiter_mock.go github.com/technova/careers-api/internal/core RateLimiter

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=submission_recorder_mock.go github.com/technova/careers-api/internal/core SubmissionRecorder
