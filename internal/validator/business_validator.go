package validator

// ValidateAssignmentCreate validates assignment creation business rules
func (v *Validator) ValidateAssignmentCreate(req *AssignmentCreateRequest) ValidationErrors {
	var errors ValidationErrors

	// Basic struct validation
	errors = append(errors, v.Validate(req)...)

	// Question-level business validations
	errors = append(errors, v.validateQuestionRules(req.Questions)...)

	return errors
}

// validateQuestionRules checks that each question carries at most one
// correct option.
func (v *Validator) validateQuestionRules(questions []QuestionCreateRequest) ValidationErrors {
	var errors ValidationErrors

	for i, q := range questions {
		correct := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct > 1 {
			errors = append(errors, ValidationError{
				Field:   "questions",
				Message: "question must have at most one correct option",
				Value:   i,
				Rule:    "business_logic",
			})
		}
	}

	return errors
}

// ValidateGrade validates a grading request against the assignment's max
// score. The upper bound depends on the assignment, so it cannot be a
// struct tag.
func (v *Validator) ValidateGrade(req *GradeRequest, maxScore int) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, v.Validate(req)...)

	if req.Score != nil && (*req.Score < 0 || *req.Score > maxScore) {
		errors = append(errors, ValidationError{
			Field:   "score",
			Message: "score must be between 0 and max score",
			Value:   *req.Score,
			Rule:    "business_logic",
		})
	}

	return errors
}
