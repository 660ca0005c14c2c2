package budgetRepository

const (
	queryCreateBudget = `
		INSERT INTO budgets (
			user_id,
			name,
			description,
			total_limit,
			created_at,
			updated_at
		) VALUES (
			:user_id,
			:name,
			:description,
			:total_limit,
			:created_at,
			:updated_at
		)
		RETURNING id
	`

	queryGetBudgetsByUserID = `
		SELECT
			id,
			user_id,
			name,
			description,
			total_limit,
			created_at,
			updated_at
		FROM budgets
		WHERE user_id = :user_id
		ORDER BY created_at DESC, id DESC
	`

	queryGetBudgetByIDAndUser = `
		SELECT
			id,
			user_id,
			name,
			description,
			total_limit,
			created_at,
			updated_at
		FROM budgets
		WHERE id = :id AND user_id = :user_id
	`

	queryDeleteBudget = `
		DELETE FROM budgets
		WHERE id = :id
	`

	queryCreateTransaction = `
		INSERT INTO transactions (
			user_id,
			budget_id,
			amount,
			is_expense,
			category,
			description,
			transaction_date,
			created_at
		) VALUES (
			:user_id,
			:budget_id,
			:amount,
			:is_expense,
			:category,
			:description,
			:transaction_date,
			:created_at
		)
		RETURNING id
	`

	queryGetTransactionByIDAndUser = `
		SELECT
			id,
			user_id,
			budget_id,
			amount,
			is_expense,
			category,
			description,
			transaction_date,
			created_at
		FROM transactions
		WHERE id = :id AND user_id = :user_id
	`

	queryGetTransactionsByUserID = `
		SELECT
			t.id,
			t.user_id,
			t.budget_id,
			t.amount,
			t.is_expense,
			t.category,
			t.description,
			t.transaction_date,
			t.created_at,
			b.name AS budget_name
		FROM transactions t
		LEFT JOIN budgets b ON b.id = t.budget_id
		WHERE t.user_id = :user_id
		ORDER BY t.transaction_date DESC, t.id DESC
		LIMIT :limit
	`

	queryGetTransactionsByUserIDAndBudget = `
		SELECT
			t.id,
			t.user_id,
			t.budget_id,
			t.amount,
			t.is_expense,
			t.category,
			t.description,
			t.transaction_date,
			t.created_at,
			b.name AS budget_name
		FROM transactions t
		LEFT JOIN budgets b ON b.id = t.budget_id
		WHERE t.user_id = :user_id AND t.budget_id = :budget_id
		ORDER BY t.transaction_date DESC, t.id DESC
		LIMIT :limit
	`

	queryGetSummariesByBudgetID = `
		SELECT
			amount,
			is_expense
		FROM transactions
		WHERE budget_id = :budget_id
	`

	queryDeleteTransaction = `
		DELETE FROM transactions
		WHERE id = :id
	`

	queryDeleteTransactionsByBudgetID = `
		DELETE FROM transactions
		WHERE budget_id = :budget_id
	`
)
