package authRepository

const (
	queryCreateUser = `
		INSERT INTO users (
			username,
			email,
			name,
			password,
			created_at,
			updated_at
		) VALUES (
			:username,
			:email,
			:name,
			:password,
			:created_at,
			:updated_at
		)
		RETURNING id
	`

	queryGetByID = `
		SELECT
			id,
			username,
			email,
			name,
			password,
			created_at,
			updated_at
		FROM users
		WHERE id = :id
	`

	queryGetByUsername = `
		SELECT
			id,
			username,
			email,
			name,
			password,
			created_at,
			updated_at
		FROM users
		WHERE username = :username
	`

	queryGetAllUsers = `
		SELECT
			id,
			username,
			email,
			name,
			password,
			created_at,
			updated_at
		FROM users
		ORDER BY id
	`
)
