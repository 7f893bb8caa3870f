package storage

// User queries
const (
	insertUserSQL = `
		INSERT INTO users (username, password)
		VALUES ($1, $2)
		RETURNING id`

	getUserByIDSQL = `
		SELECT id, username, password
		FROM users WHERE id = $1`

	getUserByUsernameSQL = `
		SELECT id, username, password
		FROM users WHERE username = $1`
)

// Reservation queries
const (
	reservationColumns = `id, name, email, phone, guests, date, time, special_requests, status`

	insertReservationSQL = `
		INSERT INTO reservations (name, email, phone, guests, date, time, special_requests, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	getReservationsSQL = `
		SELECT ` + reservationColumns + `
		FROM reservations
		ORDER BY id ASC`

	getReservationSQL = `
		SELECT ` + reservationColumns + `
		FROM reservations WHERE id = $1`

	updateReservationStatusSQL = `
		UPDATE reservations SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + reservationColumns
)

// Order queries
const (
	orderColumns = `id, name, email, phone, address, items, total, delivery_time, special_instructions, status, order_date`

	insertOrderSQL = `
		INSERT INTO orders (name, email, phone, address, items, total, delivery_time, special_instructions, status, order_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	getOrdersSQL = `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY id ASC`

	getOrderSQL = `
		SELECT ` + orderColumns + `
		FROM orders WHERE id = $1`

	updateOrderStatusSQL = `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + orderColumns
)
