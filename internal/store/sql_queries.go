package store

// Aggregates that squirrel cannot express cleanly are kept as plain SQL.
const (
	tourStats = `SELECT UPPER(difficulty),
		COUNT(*)::int,
		COALESCE(SUM(ratings_quantity), 0)::int,
		ROUND(AVG(ratings_average)::numeric, 2)::float8,
		ROUND(AVG(price)::numeric, 2)::float8,
		MIN(price),
		MAX(price)
	FROM tours
	WHERE secret_tour = FALSE AND ratings_average >= $1
	GROUP BY difficulty
	ORDER BY AVG(price) ASC;`

	monthlyPlan = `SELECT EXTRACT(MONTH FROM s.start_date::timestamptz AT TIME ZONE 'UTC')::int AS month,
		COUNT(*)::int AS num_tour_starts,
		jsonb_agg(t.name ORDER BY t.name) AS tours
	FROM tours t
	CROSS JOIN LATERAL jsonb_array_elements_text(t.start_dates) AS s(start_date)
	WHERE t.secret_tour = FALSE
		AND s.start_date::timestamptz >= $1
		AND s.start_date::timestamptz < $2
	GROUP BY month
	ORDER BY num_tour_starts DESC, month ASC
	LIMIT 12;`

	calcAverageRatings = `UPDATE tours
	SET ratings_quantity = s.quantity,
		ratings_average = s.average
	FROM (
		SELECT COUNT(*)::int AS quantity,
			COALESCE(ROUND(AVG(rating)::numeric, 1)::float8, 3) AS average
		FROM reviews
		WHERE tour_id = $1
	) AS s
	WHERE tours.id = $1
	RETURNING tours.ratings_quantity, tours.ratings_average;`

	clearExpiredResetTokens = `UPDATE users
	SET password_reset_token = NULL,
		password_reset_expires = NULL
	WHERE password_reset_token IS NOT NULL
		AND password_reset_expires <= $1;`
)
