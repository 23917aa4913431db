package repository

import (
	"career-quiz/internal/domain"
	"career-quiz/internal/repository/models"
)

func toDomainTrait(m *models.Trait) domain.Trait {
	return domain.Trait{
		ID:              m.ID,
		Code:            m.Code,
		Name:            m.Name,
		Description:     m.Description.String,
		BipolarPairCode: m.BipolarPairCode.String,
	}
}

func toDomainProfession(m *models.Profession) domain.Profession {
	return domain.Profession{
		ID:          m.ID,
		Code:        m.Code,
		Title:       m.Title,
		MLClassCode: m.MLClassCode.String,
	}
}

func toDomainTraitWeightSums(rows []models.TraitWeightSum) []domain.TraitWeightSum {
	sums := make([]domain.TraitWeightSum, 0, len(rows))
	for i := range rows {
		sums = append(sums, domain.TraitWeightSum{
			Trait: toDomainTrait(&rows[i].Trait),
			Sum:   rows[i].WeightSum,
		})
	}
	return sums
}

func toDomainAttempt(m *models.Attempt) *domain.Attempt {
	if m == nil {
		return nil
	}
	attempt := &domain.Attempt{
		ID:             m.ID,
		QuizVersionID:  m.QuizVersionID,
		GuestToken:     m.GuestToken.String,
		Locale:         m.Locale.String,
		ProcessingMode: domain.NormalizeProcessingMode(m.ProcessingMode),
		StartedAt:      m.StartedAt,
	}
	if m.UserID.Valid {
		userID := m.UserID.Int64
		attempt.UserID = &userID
	}
	if m.SubmittedAt.Valid {
		submittedAt := m.SubmittedAt.Time
		attempt.SubmittedAt = &submittedAt
	}
	return attempt
}
