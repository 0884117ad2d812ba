package data

import (
	"context"

	"github.com/technova/careers-api/internal/domain/model"
	apperrors "github.com/technova/careers-api/internal/errors"
)

// JobListingRepo serves the job catalog compiled into the binary.
type JobListingRepo struct {
	listings []model.JobListing
}

// NewJobListingRepo returns a repo over the default catalog.
func NewJobListingRepo() *JobListingRepo {
	return &JobListingRepo{listings: defaultJobListings()}
}

// NewJobListingRepoWithListings returns a repo over the given listings.
func NewJobListingRepoWithListings(listings []model.JobListing) *JobListingRepo {
	return &JobListingRepo{listings: listings}
}

// List returns a copy of every listing in catalog order.
func (r *JobListingRepo) List(_ context.Context) ([]model.JobListing, error) {
	out := make([]model.JobListing, len(r.listings))
	copy(out, r.listings)
	return out, nil
}

// GetByID returns the listing with the given id.
func (r *JobListingRepo) GetByID(_ context.Context, id int) (*model.JobListing, error) {
	for i := range r.listings {
		if r.listings[i].ID == id {
			listing := r.listings[i]
			return &listing, nil
		}
	}
	return nil, apperrors.NotFound("Job listing not found")
}

func defaultJobListings() []model.JobListing {
	return []model.JobListing{
		{
			ID:          1,
			Title:       "Senior Frontend Developer",
			Location:    "San Francisco, CA (Hybrid)",
			Type:        "Full-Time",
			Department:  "Engineering",
			Description: "We are looking for a Senior Frontend Developer to join our team and help build beautiful, responsive web applications.",
			Requirements: []string{
				"Minimum 5 years of experience with JavaScript, HTML, and CSS",
				"Strong experience with React and its ecosystem",
				"Experience with TypeScript, Redux, and modern CSS frameworks",
				"Knowledge of responsive design and cross-browser compatibility",
				"Experience with testing frameworks like Jest, React Testing Library",
				"Familiarity with GraphQL and RESTful APIs",
			},
			Responsibilities: []string{
				"Develop high-quality, responsive web applications",
				"Collaborate with designers, backend developers, and product managers",
				"Optimize applications for maximum speed and scalability",
				"Contribute to architecture decisions and technical roadmap",
				"Mentor junior developers and lead by example",
			},
		},
		{
			ID:          2,
			Title:       "Backend Engineer",
			Location:    "Remote",
			Type:        "Full-Time",
			Department:  "Engineering",
			Description: "Join our backend team to design and implement robust, scalable APIs and services that power our applications.",
			Requirements: []string{
				"Minimum 3 years of experience in backend development",
				"Proficiency in Node.js, Python, or Java",
				"Experience with database design and optimization (SQL and NoSQL)",
				"Knowledge of API design and RESTful services",
				"Understanding of containerization and cloud infrastructure",
				"Experience with CI/CD pipelines",
			},
			Responsibilities: []string{
				"Design and develop scalable, high-performance APIs",
				"Implement robust error handling and logging",
				"Optimize database queries and data processing",
				"Collaborate with frontend developers to integrate APIs",
				"Ensure high availability and reliability of services",
			},
		},
		{
			ID:          3,
			Title:       "UI/UX Designer",
			Location:    "New York, NY (On-site)",
			Type:        "Full-Time",
			Department:  "Design",
			Description: "We are seeking a talented UI/UX Designer to create beautiful, intuitive interfaces for our products and clients.",
			Requirements: []string{
				"Bachelor's degree in Design, HCI, or related field",
				"Minimum 3 years of experience in UI/UX design",
				"Proficiency in design tools like Figma, Adobe XD, or Sketch",
				"Strong portfolio demonstrating design thinking and problem-solving",
				"Experience with user research and usability testing",
				"Understanding of accessibility standards",
			},
			Responsibilities: []string{
				"Create wireframes, prototypes, and high-fidelity designs",
				"Conduct user research and usability testing",
				"Collaborate with product managers and engineers",
				"Develop and maintain design systems",
				"Ensure designs meet accessibility standards",
			},
		},
	}
}
