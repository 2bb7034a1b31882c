package favorites

// SQL for PostgresStore. All favorites queries live here.

const (
	queryListFavorites = `
		SELECT node_id, node_url
		FROM favorites
		WHERE user_name = @user_name
		ORDER BY created_at, node_id`

	queryAddFavorite = `
		INSERT INTO favorites (user_name, node_id, node_url, created_at)
		VALUES (@user_name, @node_id, @node_url, now())
		ON CONFLICT (user_name, node_id) DO UPDATE SET
			node_url = COALESCE(NULLIF(EXCLUDED.node_url, ''), favorites.node_url)`

	queryRemoveFavorite = `
		DELETE FROM favorites
		WHERE user_name = @user_name AND node_id = @node_id`
)
