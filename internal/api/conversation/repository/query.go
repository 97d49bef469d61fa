package conversationRepository

const (
	queryCreateTurn = `
		INSERT INTO conversation_turns (
			id, session_id, user_text, intent, confidence,
			source, step, reply, metadata, created_at
		) VALUES (
			:id, :session_id, :user_text, :intent, :confidence,
			:source, :step, :reply, :metadata, :created_at
		)
	`

	queryGetTurnsBySessionID = `
		SELECT
			id, session_id, user_text, intent, confidence,
			source, step, reply, metadata, created_at
		FROM conversation_turns
		WHERE session_id = :session_id
		ORDER BY created_at ASC
		LIMIT :limit OFFSET :offset
	`

	queryCountTurnsBySessionID = `
		SELECT COUNT(*)
		FROM conversation_turns
		WHERE session_id = :session_id
	`

	queryGetTurnsSince = `
		SELECT
			id, session_id, user_text, intent, confidence,
			source, step, reply, metadata, created_at
		FROM conversation_turns
		WHERE created_at >= :since
		ORDER BY created_at DESC
		LIMIT :limit
	`

	queryCreateTrainingPhrase = `
		INSERT INTO training_phrases (
			id, text, label, weight, created_at
		) VALUES (
			:id, :text, :label, :weight, :created_at
		)
	`

	queryGetAllTrainingPhrases = `
		SELECT
			id, text, label, weight, created_at
		FROM training_phrases
		ORDER BY created_at ASC
	`

	queryCountCompletedTurnsSince = `
		SELECT COUNT(*)
		FROM conversation_turns 
		WHERE step = 'complete'
		AND created_at >= :since
	`
)
