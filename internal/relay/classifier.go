package relay

import "telegram-relay-bot/internal/domain"

// Classifier отличает оператора от остальных отправителей.
type Classifier struct {
	operator domain.Identity
}

// NewClassifier создает классификатор для заданного идентификатора оператора.
func NewClassifier(operator domain.Identity) Classifier {
	return Classifier{operator: operator}
}

// Operator возвращает идентификатор оператора.
func (c Classifier) Operator() domain.Identity {
	return c.operator
}

// Classify сравнивает идентификатор отправителя с идентификатором оператора.
func (c Classifier) Classify(sender domain.Identity) domain.Role {
	if sender == c.operator {
		return domain.RoleOperator
	}
	return domain.RoleCorrespondent
}
