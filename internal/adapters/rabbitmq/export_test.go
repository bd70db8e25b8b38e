package rabbitmq

// DropConnection closes the live connection the way a broker restart does.
func (r *RabbitMQAdapter) DropConnection() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conn != nil {
		r.conn.Close()
	}
}
