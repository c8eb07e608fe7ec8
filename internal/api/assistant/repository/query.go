package assistantRepository

const (
	queryCreateCommandLog = `
		INSERT INTO command_logs (
			id,
			session_id,
			user_id,
			transcript,
			intent,
			response_type,
			response_text,
			created_at
		) VALUES (
			:id,
			:session_id,
			:user_id,
			:transcript,
			:intent,
			:response_type,
			:response_text,
			:created_at
		)
	`

	queryGetCommandLogsBySessionID = `
		SELECT
			id,
			session_id,
			user_id,
			transcript,
			intent,
			response_type,
			response_text,
			created_at
		FROM command_logs
		WHERE session_id = :session_id
		ORDER BY created_at DESC
		LIMIT :limit
	`

	queryGetCommandLogsByUserID = `
		SELECT
			id,
			session_id,
			user_id,
			transcript,
			intent,
			response_type,
			response_text,
			created_at
		FROM command_logs
		WHERE user_id = :user_id
		ORDER BY created_at DESC
		LIMIT :limit
	`
)
